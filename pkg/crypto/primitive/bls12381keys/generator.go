/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
)

// Generator derives BLS12-381 key pairs. A Generator holds no per-call state and is safe for concurrent use as
// long as its random source is.
type Generator struct {
	random io.Reader
	hash   func() hash.Hash
}

// Opt configures a Generator.
type Opt func(g *Generator)

// WithRandom sets the source read when a call has no seed. Defaults to crypto/rand.Reader.
func WithRandom(r io.Reader) Opt {
	return func(g *Generator) {
		g.random = r
	}
}

// WithHash sets the HKDF hash function. Defaults to SHA-256.
func WithHash(h func() hash.Hash) Opt {
	return func(g *Generator) {
		g.hash = h
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Opt) *Generator {
	g := &Generator{
		random: rand.Reader,
		hash:   sha256.New,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateG1Key generates a secret key and its public key in G1.
func (g *Generator) GenerateG1Key(seed Seed) (*G1PublicKey, *PrivateKey, error) {
	privKey, err := g.privateKey(seed)
	if err != nil {
		return nil, nil, err
	}

	return privKey.G1PublicKey(), privKey, nil
}

// GenerateG2Key generates a secret key and its public key in G2.
func (g *Generator) GenerateG2Key(seed Seed) (*G2PublicKey, *PrivateKey, error) {
	privKey, err := g.privateKey(seed)
	if err != nil {
		return nil, nil, err
	}

	return privKey.G2PublicKey(), privKey, nil
}

// GenerateBlindedG1Key generates a blinding factor, a secret key and the secret key's public key in G1.
// The secret key equals the one GenerateG1Key derives from the same seed.
func (g *Generator) GenerateBlindedG1Key(seed Seed) (*BlindingFactor, *G1PublicKey, *PrivateKey, error) {
	bf, privKey, err := g.blindedPrivateKey(seed)
	if err != nil {
		return nil, nil, nil, err
	}

	return bf, privKey.G1PublicKey(), privKey, nil
}

// GenerateBlindedG2Key generates a blinding factor, a secret key and the secret key's public key in G2.
// The secret key equals the one GenerateG2Key derives from the same seed.
func (g *Generator) GenerateBlindedG2Key(seed Seed) (*BlindingFactor, *G2PublicKey, *PrivateKey, error) {
	bf, privKey, err := g.blindedPrivateKey(seed)
	if err != nil {
		return nil, nil, nil, err
	}

	return bf, privKey.G2PublicKey(), privKey, nil
}

func (g *Generator) privateKey(seed Seed) (*PrivateKey, error) {
	okm, err := g.generateOKM(seed, 1)
	if err != nil {
		return nil, err
	}

	fr := frFromOKM(okm)
	if isZeroFr(fr) {
		return nil, fmt.Errorf("secret key is zero: %w", ErrInvalidDerivedKey)
	}

	return &PrivateKey{FR: fr}, nil
}

func (g *Generator) blindedPrivateKey(seed Seed) (*BlindingFactor, *PrivateKey, error) {
	const scalars = 2

	okm, err := g.generateOKM(seed, scalars)
	if err != nil {
		return nil, nil, err
	}

	skFr, bfFr := frFromOKM(okm[:okmSize]), frFromOKM(okm[okmSize:])

	switch {
	case isZeroFr(skFr):
		return nil, nil, fmt.Errorf("secret key is zero: %w", ErrInvalidDerivedKey)
	case isZeroFr(bfFr):
		return nil, nil, fmt.Errorf("blinding factor is zero: %w", ErrInvalidDerivedKey)
	case skFr.Equals(bfFr):
		return nil, nil, fmt.Errorf("blinding factor equals secret key: %w", ErrInvalidDerivedKey)
	}

	return &BlindingFactor{FR: bfFr}, &PrivateKey{FR: skFr}, nil
}

// generateOKM expands the seed into scalars*okmSize bytes. The HKDF output stream does not depend on its
// length, so the first okmSize bytes are the same for every value of scalars.
func (g *Generator) generateOKM(seed Seed, scalars int) ([]byte, error) {
	ikm, err := seed.keyingMaterial(g.random)
	if err != nil {
		return nil, err
	}

	salt := []byte(generateKeySalt)
	info := make([]byte, 2)

	okm, err := newHKDF(g.hash, ikm, salt, info, scalars*okmSize)
	if err != nil {
		return nil, fmt.Errorf("expand seed: %w", err)
	}

	return okm, nil
}

// GenerateG1Key generates a G1 key pair with the default Generator. An empty seed selects fresh randomness.
func GenerateG1Key(seed []byte) (*G1PublicKey, *PrivateKey, error) {
	return NewGenerator().GenerateG1Key(SelectSeed(seed))
}

// GenerateG2Key generates a G2 key pair with the default Generator. An empty seed selects fresh randomness.
func GenerateG2Key(seed []byte) (*G2PublicKey, *PrivateKey, error) {
	return NewGenerator().GenerateG2Key(SelectSeed(seed))
}

// GenerateBlindedG1Key generates a blinded G1 key pair with the default Generator.
func GenerateBlindedG1Key(seed []byte) (*BlindingFactor, *G1PublicKey, *PrivateKey, error) {
	return NewGenerator().GenerateBlindedG1Key(SelectSeed(seed))
}

// GenerateBlindedG2Key generates a blinded G2 key pair with the default Generator.
func GenerateBlindedG2Key(seed []byte) (*BlindingFactor, *G2PublicKey, *PrivateKey, error) {
	return NewGenerator().GenerateBlindedG2Key(SelectSeed(seed))
}
