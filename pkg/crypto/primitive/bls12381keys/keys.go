/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys

import (
	"fmt"

	ml "github.com/IBM/mathlib"
)

// PrivateKey defines a BLS12-381 secret scalar.
type PrivateKey struct {
	FR *ml.Zr
}

// UnmarshalPrivateKey parses a 32 byte big-endian secret scalar. The scalar must be canonical and non-zero.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != SecretKeyLen {
		return nil, fmt.Errorf("invalid size of private key: %w", ErrMalformedInput)
	}

	fr, ok := parseFr(privKeyBytes)
	if !ok {
		return nil, fmt.Errorf("private key is not a canonical scalar: %w", ErrMalformedInput)
	}

	if isZeroFr(fr) {
		return nil, fmt.Errorf("private key is zero: %w", ErrMalformedInput)
	}

	return &PrivateKey{FR: fr}, nil
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return frToBytes(k.FR), nil
}

// G1PublicKey returns the public key sk·G1.
func (k *PrivateKey) G1PublicKey() *G1PublicKey {
	return &G1PublicKey{PointG1: curve.GenG1.Mul(k.FR)}
}

// G2PublicKey returns the public key sk·G2.
func (k *PrivateKey) G2PublicKey() *G2PublicKey {
	return &G2PublicKey{PointG2: curve.GenG2.Mul(k.FR)}
}

// Split returns the share sk - r, so that the secret key is recovered by Combine(share, r).
func (k *PrivateKey) Split(bf *BlindingFactor) *PrivateKey {
	share := k.FR.Minus(bf.FR)
	share.Mod(curve.GroupOrder)

	return &PrivateKey{FR: share}
}

// Combine joins a share produced by PrivateKey.Split with its blinding factor.
func Combine(share *PrivateKey, bf *BlindingFactor) *PrivateKey {
	fr := share.FR.Plus(bf.FR)
	fr.Mod(curve.GroupOrder)

	return &PrivateKey{FR: fr}
}

// BlindingFactor is an auxiliary secret scalar produced by blinded key generation.
type BlindingFactor struct {
	FR *ml.Zr
}

// UnmarshalBlindingFactor parses a 32 byte blinding factor.
func UnmarshalBlindingFactor(bfBytes []byte) (*BlindingFactor, error) {
	if len(bfBytes) != BlindingFactorLen {
		return nil, fmt.Errorf("invalid size of blinding factor: %w", ErrMalformedInput)
	}

	fr, ok := parseFr(bfBytes)
	if !ok {
		return nil, fmt.Errorf("blinding factor is not a canonical scalar: %w", ErrMalformedInput)
	}

	return &BlindingFactor{FR: fr}, nil
}

// Marshal marshals BlindingFactor.
func (bf *BlindingFactor) Marshal() ([]byte, error) {
	return frToBytes(bf.FR), nil
}

// G1Commitment returns r·G1.
func (bf *BlindingFactor) G1Commitment() *G1PublicKey {
	return &G1PublicKey{PointG1: curve.GenG1.Mul(bf.FR)}
}

// G2Commitment returns r·G2.
func (bf *BlindingFactor) G2Commitment() *G2PublicKey {
	return &G2PublicKey{PointG2: curve.GenG2.Mul(bf.FR)}
}

// G1PublicKey defines a BLS12-381 public key in G1.
type G1PublicKey struct {
	PointG1 *ml.G1
}

// UnmarshalG1PublicKey parses a compressed G1 public key.
func UnmarshalG1PublicKey(pubKeyBytes []byte) (*G1PublicKey, error) {
	if len(pubKeyBytes) != G1PublicKeyLen {
		return nil, fmt.Errorf("invalid size of G1 public key: %w", ErrMalformedInput)
	}

	pointG1, err := curve.NewG1FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 public key: %w: %v", ErrMalformedInput, err)
	}

	return &G1PublicKey{PointG1: pointG1}, nil
}

// Marshal marshals G1PublicKey in compressed form.
func (pk *G1PublicKey) Marshal() ([]byte, error) {
	return pk.PointG1.Compressed(), nil
}

// Add returns the point sum of pk and other.
func (pk *G1PublicKey) Add(other *G1PublicKey) *G1PublicKey {
	sum := pk.PointG1.Copy()
	sum.Add(other.PointG1)

	return &G1PublicKey{PointG1: sum}
}

// G2PublicKey defines a BLS12-381 public key in G2.
type G2PublicKey struct {
	PointG2 *ml.G2
}

// UnmarshalG2PublicKey parses a compressed G2 public key.
func UnmarshalG2PublicKey(pubKeyBytes []byte) (*G2PublicKey, error) {
	if len(pubKeyBytes) != G2PublicKeyLen {
		return nil, fmt.Errorf("invalid size of G2 public key: %w", ErrMalformedInput)
	}

	pointG2, err := curve.NewG2FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize G2 public key: %w: %v", ErrMalformedInput, err)
	}

	return &G2PublicKey{PointG2: pointG2}, nil
}

// Marshal marshals G2PublicKey in compressed form.
func (pk *G2PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// Add returns the point sum of pk and other.
func (pk *G2PublicKey) Add(other *G2PublicKey) *G2PublicKey {
	sum := pk.PointG2.Copy()
	sum.Add(other.PointG2)

	return &G2PublicKey{PointG2: sum}
}
