/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"fmt"

	ml "github.com/IBM/mathlib"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
)

// PublicKey defines the BBS+ public key w = sk·G2.
type PublicKey struct {
	PointG2 *ml.G2
}

// NewPublicKey returns the PublicKey of privKey.
func NewPublicKey(privKey *bls12381keys.PrivateKey) *PublicKey {
	return &PublicKey{PointG2: privKey.G2PublicKey().PointG2}
}

// UnmarshalPublicKey parses a PublicKey from compressed bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	pk, err := bls12381keys.UnmarshalG2PublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	return &PublicKey{PointG2: pk.PointG2}, nil
}

// Marshal marshals PublicKey.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// PublicKeyWithGenerators extends PublicKey with a blinding generator h0, a commitment to the secret key w,
// and a generator for each message h.
type PublicKeyWithGenerators struct {
	h0 *ml.G1
	h  []*ml.G1

	w *ml.G2

	messagesCount int
}

// DerivePublicKey expands a 32 byte secret key into a BBS+ public key for messagesCount messages and validates
// the result. Malformed input fails with bls12381keys.ErrMalformedInput before anything is derived, a derived key
// that does not validate fails with bls12381keys.ErrInvalidDerivedKey.
func DerivePublicKey(secretKey []byte, messagesCount int) (*PublicKeyWithGenerators, error) {
	privKey, err := bls12381keys.UnmarshalPrivateKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	pkwg, err := NewPublicKey(privKey).ToPublicKeyWithGenerators(messagesCount)
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	if err = pkwg.Validate(); err != nil {
		return nil, err
	}

	return pkwg, nil
}

// ToPublicKeyWithGenerators creates PublicKeyWithGenerators from the PublicKey.
func (pk *PublicKey) ToPublicKeyWithGenerators(messagesCount int) (*PublicKeyWithGenerators, error) {
	if messagesCount < 0 || messagesCount > MaxMessagesCount {
		return nil, fmt.Errorf("invalid messages count %d, must be between 0 and %d: %w",
			messagesCount, MaxMessagesCount, bls12381keys.ErrMalformedInput)
	}

	offset := g2UncompressedSize + 1

	data := calcData(pk, messagesCount)

	h0 := hashToG1(data)

	h := make([]*ml.G1, messagesCount)

	for i := 1; i <= messagesCount; i++ {
		dataCopy := make([]byte, len(data))
		copy(dataCopy, data)

		iBytes := uint32ToBytes(uint32(i))

		for j := 0; j < len(iBytes); j++ {
			dataCopy[j+offset] = iBytes[j]
		}

		h[i-1] = hashToG1(dataCopy)
	}

	return &PublicKeyWithGenerators{
		h0:            h0,
		h:             h,
		w:             pk.PointG2,
		messagesCount: messagesCount,
	}, nil
}

// calcData returns w || 0^6 || I2OSP(messagesCount, 4).
func calcData(key *PublicKey, messagesCount int) []byte {
	const zeroPadding = 6

	data := key.PointG2.Bytes()

	data = append(data, make([]byte, zeroPadding)...)

	mcBytes := uint32ToBytes(uint32(messagesCount))

	data = append(data, mcBytes...)

	return data
}

func uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, messagesCountSize)

	binary.BigEndian.PutUint32(bytes, value)

	return bytes
}

// PublicKey returns the G2 part of the key.
func (pkwg *PublicKeyWithGenerators) PublicKey() *PublicKey {
	return &PublicKey{PointG2: pkwg.w}
}

// MessagesCount returns the number of message generators.
func (pkwg *PublicKeyWithGenerators) MessagesCount() int {
	return pkwg.messagesCount
}

// MarshalCompressed encodes the key as w || h0 || I2OSP(messagesCount, 4) || h[0] || ... || h[n-1],
// with every point compressed.
func (pkwg *PublicKeyWithGenerators) MarshalCompressed() ([]byte, error) {
	if len(pkwg.h) != pkwg.messagesCount {
		return nil, fmt.Errorf("generators count %d does not match messages count %d: %w",
			len(pkwg.h), pkwg.messagesCount, bls12381keys.ErrInvalidDerivedKey)
	}

	bytes := make([]byte, 0, PublicKeySize(pkwg.messagesCount))

	bytes = append(bytes, pkwg.w.Compressed()...)
	bytes = append(bytes, pkwg.h0.Compressed()...)
	bytes = append(bytes, uint32ToBytes(uint32(pkwg.messagesCount))...)

	for _, h := range pkwg.h {
		bytes = append(bytes, h.Compressed()...)
	}

	return bytes, nil
}

// UnmarshalPublicKeyWithGenerators parses the compressed form produced by MarshalCompressed.
// The result is not validated.
func UnmarshalPublicKeyWithGenerators(bytes []byte) (*PublicKeyWithGenerators, error) {
	if len(bytes) < PublicKeyBaseLen {
		return nil, fmt.Errorf("invalid size of public key: %w", bls12381keys.ErrMalformedInput)
	}

	offset := bls12381G2PublicKeyLen

	w, err := curve.NewG2FromCompressed(bytes[:offset])
	if err != nil {
		return nil, fmt.Errorf("deserialize w: %w: %v", bls12381keys.ErrMalformedInput, err)
	}

	h0, err := curve.NewG1FromCompressed(bytes[offset : offset+g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize h0: %w: %v", bls12381keys.ErrMalformedInput, err)
	}

	offset += g1CompressedSize

	messagesCount := binary.BigEndian.Uint32(bytes[offset : offset+messagesCountSize])
	offset += messagesCountSize

	if uint64(messagesCount) > uint64(MaxMessagesCount) {
		return nil, fmt.Errorf("invalid messages count %d: %w", messagesCount, bls12381keys.ErrMalformedInput)
	}

	if uint64(len(bytes)-offset) != uint64(messagesCount)*uint64(GeneratorLen) {
		return nil, fmt.Errorf("invalid size of public key for %d messages: %w",
			messagesCount, bls12381keys.ErrMalformedInput)
	}

	h := make([]*ml.G1, messagesCount)

	for i := range h {
		h[i], err = curve.NewG1FromCompressed(bytes[offset : offset+GeneratorLen])
		if err != nil {
			return nil, fmt.Errorf("deserialize h%d: %w: %v", i+1, bls12381keys.ErrMalformedInput, err)
		}

		offset += GeneratorLen
	}

	return &PublicKeyWithGenerators{
		h0:            h0,
		h:             h,
		w:             w,
		messagesCount: int(messagesCount),
	}, nil
}
