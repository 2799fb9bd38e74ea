/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs12381g2pub derives BBS+ public keys, where the public key is a point in G2, from BLS12-381 secret keys.
// A BBS+ public key for n messages is the G2 point w = sk·G2 together with a blinding generator h0 and one
// generator per message, all in G1 and hashed deterministically from w and n.
//
// BBS+ signature scheme (as defined in https://eprint.iacr.org/2016/663.pdf, section 4.3).
package bbs12381g2pub

import (
	"math"

	ml "github.com/IBM/mathlib"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
)

// nolint:gochecknoglobals
var curve = bls12381keys.Curve()

const (
	// Number of bytes used to encode the message count.
	messagesCountSize = 4

	dstG1 = "BLS12381G1_XMD:BLAKE2B_SSWU_RO_BBS+_SIGNATURES:1_0_0"
)

// nolint:gochecknoglobals
var (
	// Default BLS 12-381 public key length in G2 field.
	bls12381G2PublicKeyLen = curve.CompressedG2ByteSize

	// Number of bytes in G1 X coordinate.
	g1CompressedSize = curve.CompressedG1ByteSize

	// Number of bytes in G2 X(a, b) and Y(a, b) coordinates.
	g2UncompressedSize = curve.G2ByteSize

	// PublicKeyBaseLen is the size of a compressed BBS+ public key with no message generators.
	PublicKeyBaseLen = bls12381G2PublicKeyLen + g1CompressedSize + messagesCountSize

	// GeneratorLen is the size added to a compressed BBS+ public key by each message.
	GeneratorLen = g1CompressedSize

	// MaxMessagesCount is the largest messages count whose compressed public key size fits in an int32.
	MaxMessagesCount = (math.MaxInt32 - PublicKeyBaseLen) / GeneratorLen
)

// PublicKeySize returns the size of a compressed BBS+ public key for messagesCount messages.
// messagesCount is expected to be within [0, MaxMessagesCount].
func PublicKeySize(messagesCount int) int {
	return PublicKeyBaseLen + messagesCount*GeneratorLen
}

func hashToG1(data []byte) *ml.G1 {
	return curve.HashToG1WithDomain(data, []byte(dstG1))
}
