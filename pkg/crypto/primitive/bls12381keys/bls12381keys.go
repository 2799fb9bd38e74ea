/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bls12381keys generates BLS12-381 key material for the BBS+ signature scheme.
//
// A key pair is a secret scalar in Fr together with its public point in either G1 or G2. Keys can be derived
// deterministically from input keying material (a seed) or drawn from a secure random source when no seed is
// supplied. Blinded key generation additionally yields a blinding scalar bound to the same seed, which can be used
// to split the secret key into two shares.
//
// BBS+ public keys sized for a number of messages are derived from a secret key by the
// "github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bbs12381g2pub" package.
package bls12381keys

import (
	ml "github.com/IBM/mathlib"
)

// nolint:gochecknoglobals
var curve = ml.Curves[ml.BLS12_381_BBS]

const (
	// SecretKeyLen is the size of a marshalled secret key.
	SecretKeyLen = 32

	// BlindingFactorLen is the size of a marshalled blinding factor.
	BlindingFactorLen = SecretKeyLen

	// Number of bytes of input keying material read from the random source when no seed is provided.
	defaultSeedSize = 32

	// Number of bytes of HKDF output consumed by one scalar.
	okmSize = 48
)

// nolint:gochecknoglobals
var (
	// G1PublicKeyLen is the size of a compressed public key in G1.
	G1PublicKeyLen = curve.CompressedG1ByteSize

	// G2PublicKeyLen is the size of a compressed public key in G2.
	G2PublicKeyLen = curve.CompressedG2ByteSize
)

// Curve returns the mathlib curve the keys of this package live on.
func Curve() *ml.Curve {
	return curve
}
