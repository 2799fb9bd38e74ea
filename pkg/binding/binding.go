/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package binding exposes BLS12-381 and BBS+ key generation to foreign callers that pass pre-allocated byte buffers
// and expect an integer status code: 1 on success, 0 on failure.
//
// Every call validates all output buffers before generating anything, so on failure no buffer is written.
// The failure reason is available from the error returning variants (the functions suffixed with E).
package binding

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
)

const (
	// Success is returned when all output buffers are populated.
	Success int32 = 1
	// Failure is returned when no output buffer was written.
	Failure int32 = 0
)

var logger = log.New("bbs-keys/binding")

// PublicKeyWriter receives the compressed BBS+ public key.
type PublicKeyWriter interface {
	Put(publicKey []byte) error
}

// Binding adapts a key Generator to buffer based calls.
type Binding struct {
	generator *bls12381keys.Generator
}

// New creates a Binding. Options are passed to the underlying key Generator.
func New(opts ...bls12381keys.Opt) *Binding {
	return &Binding{generator: bls12381keys.NewGenerator(opts...)}
}

// nolint:gochecknoglobals
var defaultBinding = New()

// BLSGenerateG1Key fills publicKey (48 bytes) and secretKey (32 bytes) from seed. An empty seed selects randomness.
func BLSGenerateG1Key(seed, publicKey, secretKey []byte) int32 {
	return status("bls_generate_g1_key", defaultBinding.GenerateG1KeyE(seed, publicKey, secretKey))
}

// BLSGenerateG2Key fills publicKey (96 bytes) and secretKey (32 bytes) from seed. An empty seed selects randomness.
func BLSGenerateG2Key(seed, publicKey, secretKey []byte) int32 {
	return status("bls_generate_g2_key", defaultBinding.GenerateG2KeyE(seed, publicKey, secretKey))
}

// BLSGenerateBlindedG1Key fills blindingFactor (32 bytes), publicKey (48 bytes) and secretKey (32 bytes) from seed.
func BLSGenerateBlindedG1Key(seed, blindingFactor, publicKey, secretKey []byte) int32 {
	return status("bls_generate_blinded_g1_key",
		defaultBinding.GenerateBlindedG1KeyE(seed, blindingFactor, publicKey, secretKey))
}

// BLSGenerateBlindedG2Key fills blindingFactor (32 bytes), publicKey (96 bytes) and secretKey (32 bytes) from seed.
func BLSGenerateBlindedG2Key(seed, blindingFactor, publicKey, secretKey []byte) int32 {
	return status("bls_generate_blinded_g2_key",
		defaultBinding.GenerateBlindedG2KeyE(seed, blindingFactor, publicKey, secretKey))
}

// BLSSecretKeyToBBSKey derives the BBS+ public key for messageCount messages from a 32 byte secret key and hands its
// compressed form to out.
func BLSSecretKeyToBBSKey(secretKey []byte, messageCount int32, out PublicKeyWriter) int32 {
	return status("bls_secret_key_to_bbs_key", SecretKeyToBBSKeyE(secretKey, messageCount, out))
}

// BLSG1PublicKeySize returns the size of a G1 public key buffer.
func BLSG1PublicKeySize() int32 {
	return int32(bls12381keys.G1PublicKeyLen)
}

// BLSG2PublicKeySize returns the size of a G2 public key buffer.
func BLSG2PublicKeySize() int32 {
	return int32(bls12381keys.G2PublicKeyLen)
}

// BLSSecretKeySize returns the size of a secret key buffer.
func BLSSecretKeySize() int32 {
	return bls12381keys.SecretKeyLen
}

// BLSBlindingFactorSize returns the size of a blinding factor buffer.
func BLSBlindingFactorSize() int32 {
	return bls12381keys.BlindingFactorLen
}

// BBSPublicKeySize returns the size of a compressed BBS+ public key for messageCount messages, or 0 when
// messageCount is negative or the size does not fit in an int32.
func BBSPublicKeySize(messageCount int32) int32 {
	if messageCount < 0 || int(messageCount) > bbs12381g2pub.MaxMessagesCount {
		return 0
	}

	return int32(bbs12381g2pub.PublicKeySize(int(messageCount)))
}

// GenerateG1KeyE is BLSGenerateG1Key returning the failure reason.
func (b *Binding) GenerateG1KeyE(seed, publicKey, secretKey []byte) error {
	err := checkBuffers(
		buffer{"public key", publicKey, bls12381keys.G1PublicKeyLen},
		buffer{"secret key", secretKey, bls12381keys.SecretKeyLen})
	if err != nil {
		return err
	}

	pubKey, privKey, err := b.generator.GenerateG1Key(bls12381keys.SelectSeed(seed))
	if err != nil {
		return err
	}

	return fill(
		output{publicKey, pubKey},
		output{secretKey, privKey})
}

// GenerateG2KeyE is BLSGenerateG2Key returning the failure reason.
func (b *Binding) GenerateG2KeyE(seed, publicKey, secretKey []byte) error {
	err := checkBuffers(
		buffer{"public key", publicKey, bls12381keys.G2PublicKeyLen},
		buffer{"secret key", secretKey, bls12381keys.SecretKeyLen})
	if err != nil {
		return err
	}

	pubKey, privKey, err := b.generator.GenerateG2Key(bls12381keys.SelectSeed(seed))
	if err != nil {
		return err
	}

	return fill(
		output{publicKey, pubKey},
		output{secretKey, privKey})
}

// GenerateBlindedG1KeyE is BLSGenerateBlindedG1Key returning the failure reason.
func (b *Binding) GenerateBlindedG1KeyE(seed, blindingFactor, publicKey, secretKey []byte) error {
	err := checkBuffers(
		buffer{"blinding factor", blindingFactor, bls12381keys.BlindingFactorLen},
		buffer{"public key", publicKey, bls12381keys.G1PublicKeyLen},
		buffer{"secret key", secretKey, bls12381keys.SecretKeyLen})
	if err != nil {
		return err
	}

	bf, pubKey, privKey, err := b.generator.GenerateBlindedG1Key(bls12381keys.SelectSeed(seed))
	if err != nil {
		return err
	}

	return fill(
		output{blindingFactor, bf},
		output{publicKey, pubKey},
		output{secretKey, privKey})
}

// GenerateBlindedG2KeyE is BLSGenerateBlindedG2Key returning the failure reason.
func (b *Binding) GenerateBlindedG2KeyE(seed, blindingFactor, publicKey, secretKey []byte) error {
	err := checkBuffers(
		buffer{"blinding factor", blindingFactor, bls12381keys.BlindingFactorLen},
		buffer{"public key", publicKey, bls12381keys.G2PublicKeyLen},
		buffer{"secret key", secretKey, bls12381keys.SecretKeyLen})
	if err != nil {
		return err
	}

	bf, pubKey, privKey, err := b.generator.GenerateBlindedG2Key(bls12381keys.SelectSeed(seed))
	if err != nil {
		return err
	}

	return fill(
		output{blindingFactor, bf},
		output{publicKey, pubKey},
		output{secretKey, privKey})
}

// SecretKeyToBBSKeyE is BLSSecretKeyToBBSKey returning the failure reason.
func SecretKeyToBBSKeyE(secretKey []byte, messageCount int32, out PublicKeyWriter) error {
	if out == nil {
		return fmt.Errorf("public key writer is not set: %w", bls12381keys.ErrMalformedInput)
	}

	pkwg, err := bbs12381g2pub.DerivePublicKey(secretKey, int(messageCount))
	if err != nil {
		return err
	}

	pkBytes, err := pkwg.MarshalCompressed()
	if err != nil {
		return err
	}

	if err = out.Put(pkBytes); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	return nil
}

func status(op string, err error) int32 {
	if err != nil {
		logger.Debugf("%s failed (%s): %s", op, bls12381keys.KindOf(err), err)

		return Failure
	}

	return Success
}

type buffer struct {
	name string
	buf  []byte
	size int
}

func checkBuffers(buffers ...buffer) error {
	for _, b := range buffers {
		if len(b.buf) != b.size {
			return fmt.Errorf("%s buffer has %d bytes, expected %d: %w",
				b.name, len(b.buf), b.size, bls12381keys.ErrMalformedInput)
		}
	}

	return nil
}

type marshaller interface {
	Marshal() ([]byte, error)
}

type output struct {
	buf   []byte
	value marshaller
}

// fill marshals every value before copying any of them.
func fill(outputs ...output) error {
	encoded := make([][]byte, len(outputs))

	for i, o := range outputs {
		b, err := o.value.Marshal()
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}

		if len(b) != len(o.buf) {
			return fmt.Errorf("marshalled output has %d bytes, expected %d: %w",
				len(b), len(o.buf), bls12381keys.ErrInvalidDerivedKey)
		}

		encoded[i] = b
	}

	for i, o := range outputs {
		copy(o.buf, encoded[i])
	}

	return nil
}
