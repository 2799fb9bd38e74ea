/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys

import (
	"bytes"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const generateKeySalt = "BBS-SIG-KEYGEN-SALT-"

// nolint:gochecknoglobals
var f2192Bytes = []byte{
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
}

func f2192() *ml.Zr {
	return curve.NewZrFromBytes(f2192Bytes)
}

// frFromOKM maps output keying material to Fr.
func frFromOKM(message []byte) *ml.Zr {
	const (
		eightBytes = 8
		okmMiddle  = 24
	)

	// We pass a null key so error is impossible here.
	h, _ := blake2b.New384(nil) //nolint:errcheck

	// blake2b.digest() does not return an error.
	_, _ = h.Write(message)
	okm := h.Sum(nil)
	emptyEightBytes := make([]byte, eightBytes)

	elm := curve.NewZrFromBytes(append(emptyEightBytes, okm[:okmMiddle]...))
	elm = elm.Mul(f2192())
	elm.Mod(curve.GroupOrder)

	fr := curve.NewZrFromBytes(append(emptyEightBytes, okm[okmMiddle:]...))
	elm = elm.Plus(fr)
	elm.Mod(curve.GroupOrder)

	return elm
}

// parseFr decodes a 32 byte big-endian scalar. It fails on non-canonical (>= r) encodings.
func parseFr(data []byte) (*ml.Zr, bool) {
	fr := curve.NewZrFromBytes(data)
	fr.Mod(curve.GroupOrder)

	if !bytes.Equal(frToBytes(fr), data) {
		return nil, false
	}

	return fr, true
}

// frToBytes encodes fr as exactly SecretKeyLen big-endian bytes.
func frToBytes(fr *ml.Zr) []byte {
	b := fr.Bytes()
	if len(b) >= SecretKeyLen {
		return b[len(b)-SecretKeyLen:]
	}

	out := make([]byte, SecretKeyLen)
	copy(out[SecretKeyLen-len(b):], b)

	return out
}

func isZeroFr(fr *ml.Zr) bool {
	return fr.Equals(curve.NewZrFromInt(0))
}

func newHKDF(h func() hash.Hash, ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(h, ikm, salt, info)
	result := make([]byte, length)

	_, err := io.ReadFull(reader, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
