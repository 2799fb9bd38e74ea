/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys_test

import (
	"bytes"
	"crypto/sha512"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("reader closed")
}

func TestKeyLengths(t *testing.T) {
	require.Equal(t, 48, bls12381keys.G1PublicKeyLen)
	require.Equal(t, 96, bls12381keys.G2PublicKeyLen)
	require.Equal(t, 32, bls12381keys.SecretKeyLen)
	require.Equal(t, 32, bls12381keys.BlindingFactorLen)
}

func TestGenerateG1Key(t *testing.T) {
	seed := []byte("01234567890123456789012345678901")

	t.Run("deterministic with seed", func(t *testing.T) {
		pub1, priv1 := marshalG1(t, seed)
		pub2, priv2 := marshalG1(t, seed)

		require.Equal(t, pub1, pub2)
		require.Equal(t, priv1, priv2)
		require.Len(t, pub1, bls12381keys.G1PublicKeyLen)
		require.Len(t, priv1, bls12381keys.SecretKeyLen)
	})

	t.Run("short seed is accepted", func(t *testing.T) {
		pub, priv := marshalG1(t, []byte{1})
		require.Len(t, pub, bls12381keys.G1PublicKeyLen)
		require.Len(t, priv, bls12381keys.SecretKeyLen)
	})

	t.Run("different seeds give different keys", func(t *testing.T) {
		_, priv1 := marshalG1(t, seed)
		_, priv2 := marshalG1(t, []byte("another seed"))

		require.NotEqual(t, priv1, priv2)
	})

	t.Run("empty seed uses randomness", func(t *testing.T) {
		_, priv1 := marshalG1(t, nil)
		_, priv2 := marshalG1(t, []byte{})

		require.NotEqual(t, priv1, priv2)
	})

	t.Run("seed is not modified", func(t *testing.T) {
		s := make([]byte, 4, 8)
		copy(s, "seed")

		_, _, err := bls12381keys.GenerateG1Key(s)
		require.NoError(t, err)
		require.Equal(t, []byte("seed"), s)
		require.Equal(t, byte(0), s[:5][4])
	})
}

func TestGenerateG2Key(t *testing.T) {
	seed := []byte("01234567890123456789012345678901")

	pub1, priv1 := marshalG2(t, seed)
	pub2, priv2 := marshalG2(t, seed)

	require.Equal(t, pub1, pub2)
	require.Equal(t, priv1, priv2)
	require.Len(t, pub1, bls12381keys.G2PublicKeyLen)

	_, randPriv1 := marshalG2(t, nil)
	_, randPriv2 := marshalG2(t, nil)
	require.NotEqual(t, randPriv1, randPriv2)
}

func TestGroupSeparation(t *testing.T) {
	seed := []byte("group separation seed")

	pubG1, privG1 := marshalG1(t, seed)
	pubG2, privG2 := marshalG2(t, seed)

	require.NotEqual(t, len(pubG1), len(pubG2))
	require.False(t, bytes.Equal(pubG1, pubG2[:len(pubG1)]))

	// both variants expand the same seed into the same secret
	require.Equal(t, privG1, privG2)
}

func TestGenerateBlindedKeys(t *testing.T) {
	seed := []byte("blinded key seed")

	t.Run("G1 deterministic", func(t *testing.T) {
		bf1, pub1, priv1 := marshalBlindedG1(t, seed)
		bf2, pub2, priv2 := marshalBlindedG1(t, seed)

		require.Equal(t, bf1, bf2)
		require.Equal(t, pub1, pub2)
		require.Equal(t, priv1, priv2)
		require.NotEqual(t, bf1, priv1)
		require.Len(t, bf1, bls12381keys.BlindingFactorLen)
		require.Len(t, pub1, bls12381keys.G1PublicKeyLen)

		pub, priv := marshalG1(t, seed)
		require.Equal(t, pub, pub1)
		require.Equal(t, priv, priv1)
	})

	t.Run("G2 deterministic", func(t *testing.T) {
		bf1, pub1, priv1 := marshalBlindedG2(t, seed)
		bf2, pub2, priv2 := marshalBlindedG2(t, seed)

		require.Equal(t, bf1, bf2)
		require.Equal(t, pub1, pub2)
		require.Equal(t, priv1, priv2)
		require.NotEqual(t, bf1, priv1)
		require.Len(t, pub1, bls12381keys.G2PublicKeyLen)
	})

	t.Run("no seed is not reproducible", func(t *testing.T) {
		bf1, _, priv1 := marshalBlindedG1(t, nil)
		bf2, _, priv2 := marshalBlindedG1(t, nil)

		require.NotEqual(t, bf1, bf2)
		require.NotEqual(t, priv1, priv2)
		require.NotEqual(t, bf1, priv1)
	})
}

func TestSplitAndCombine(t *testing.T) {
	bf, pub, priv, err := bls12381keys.GenerateBlindedG1Key([]byte("split seed"))
	require.NoError(t, err)

	share := priv.Split(bf)

	shareBytes, err := share.Marshal()
	require.NoError(t, err)

	privBytes, err := priv.Marshal()
	require.NoError(t, err)
	require.NotEqual(t, privBytes, shareBytes)

	combined, err := bls12381keys.Combine(share, bf).Marshal()
	require.NoError(t, err)
	require.Equal(t, privBytes, combined)

	pubBytes, err := pub.Marshal()
	require.NoError(t, err)

	sumG1, err := share.G1PublicKey().Add(bf.G1Commitment()).Marshal()
	require.NoError(t, err)
	require.Equal(t, pubBytes, sumG1)

	pubG2Bytes, err := priv.G2PublicKey().Marshal()
	require.NoError(t, err)

	sumG2, err := share.G2PublicKey().Add(bf.G2Commitment()).Marshal()
	require.NoError(t, err)
	require.Equal(t, pubG2Bytes, sumG2)
}

func TestGenerator(t *testing.T) {
	t.Run("random source failure", func(t *testing.T) {
		g := bls12381keys.NewGenerator(bls12381keys.WithRandom(failingReader{}))

		pub, priv, err := g.GenerateG1Key(bls12381keys.SelectSeed(nil))
		require.Error(t, err)
		require.ErrorIs(t, err, bls12381keys.ErrEntropyUnavailable)
		require.Equal(t, bls12381keys.KindEntropyUnavailable, bls12381keys.KindOf(err))
		require.Nil(t, pub)
		require.Nil(t, priv)

		bf, pubG2, priv, err := g.GenerateBlindedG2Key(bls12381keys.Seed{})
		require.ErrorIs(t, err, bls12381keys.ErrEntropyUnavailable)
		require.Nil(t, bf)
		require.Nil(t, pubG2)
		require.Nil(t, priv)
	})

	t.Run("seed does not touch the random source", func(t *testing.T) {
		g := bls12381keys.NewGenerator(bls12381keys.WithRandom(failingReader{}))

		_, priv, err := g.GenerateG2Key(bls12381keys.SelectSeed([]byte("seed")))
		require.NoError(t, err)
		require.NotNil(t, priv)
	})

	t.Run("deterministic random source", func(t *testing.T) {
		random := bytes.Repeat([]byte{7}, 32)

		g := bls12381keys.NewGenerator(bls12381keys.WithRandom(bytes.NewReader(random)))
		_, fromRandom, err := g.GenerateG1Key(bls12381keys.Seed{})
		require.NoError(t, err)

		_, fromSeed, err := bls12381keys.GenerateG1Key(random)
		require.NoError(t, err)

		require.Equal(t, secretBytes(t, fromSeed), secretBytes(t, fromRandom))
	})

	t.Run("custom hash", func(t *testing.T) {
		seed := bls12381keys.SelectSeed([]byte("seed"))

		_, priv512, err := bls12381keys.NewGenerator(bls12381keys.WithHash(sha512.New)).GenerateG1Key(seed)
		require.NoError(t, err)

		_, priv256, err := bls12381keys.NewGenerator().GenerateG1Key(seed)
		require.NoError(t, err)

		require.NotEqual(t, secretBytes(t, priv256), secretBytes(t, priv512))
	})
}

func TestSelectSeed(t *testing.T) {
	require.True(t, bls12381keys.SelectSeed(nil).UseDefault())
	require.True(t, bls12381keys.SelectSeed([]byte{}).UseDefault())
	require.False(t, bls12381keys.SelectSeed([]byte{0}).UseDefault())

	raw := []byte("seed")
	seed := bls12381keys.SelectSeed(raw)
	raw[0] = 'x'

	_, fromSelected, err := bls12381keys.NewGenerator().GenerateG1Key(seed)
	require.NoError(t, err)

	_, fromOriginal, err := bls12381keys.GenerateG1Key([]byte("seed"))
	require.NoError(t, err)

	require.Equal(t, secretBytes(t, fromOriginal), secretBytes(t, fromSelected))
}

func TestPrivateKey_Marshal(t *testing.T) {
	_, privKey, err := bls12381keys.GenerateG2Key(nil)
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)
	require.Len(t, privKeyBytes, bls12381keys.SecretKeyLen)

	privKeyUnmarshalled, err := bls12381keys.UnmarshalPrivateKey(privKeyBytes)
	require.NoError(t, err)

	remarshalled, err := privKeyUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, privKeyBytes, remarshalled)

	t.Run("invalid size", func(t *testing.T) {
		_, err = bls12381keys.UnmarshalPrivateKey(make([]byte, 31))
		require.EqualError(t, err, "invalid size of private key: malformed input")
		require.Equal(t, bls12381keys.KindMalformedInput, bls12381keys.KindOf(err))
	})

	t.Run("not canonical", func(t *testing.T) {
		_, err = bls12381keys.UnmarshalPrivateKey(bytes.Repeat([]byte{0xff}, 32))
		require.ErrorIs(t, err, bls12381keys.ErrMalformedInput)
	})

	t.Run("zero", func(t *testing.T) {
		_, err = bls12381keys.UnmarshalPrivateKey(make([]byte, 32))
		require.ErrorIs(t, err, bls12381keys.ErrMalformedInput)
	})
}

func TestPublicKey_Marshal(t *testing.T) {
	pubG1, _, err := bls12381keys.GenerateG1Key(nil)
	require.NoError(t, err)

	g1Bytes, err := pubG1.Marshal()
	require.NoError(t, err)

	g1Unmarshalled, err := bls12381keys.UnmarshalG1PublicKey(g1Bytes)
	require.NoError(t, err)

	g1Remarshalled, err := g1Unmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, g1Bytes, g1Remarshalled)

	pubG2, _, err := bls12381keys.GenerateG2Key(nil)
	require.NoError(t, err)

	g2Bytes, err := pubG2.Marshal()
	require.NoError(t, err)

	g2Unmarshalled, err := bls12381keys.UnmarshalG2PublicKey(g2Bytes)
	require.NoError(t, err)

	g2Remarshalled, err := g2Unmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, g2Bytes, g2Remarshalled)

	_, err = bls12381keys.UnmarshalG1PublicKey(g2Bytes)
	require.ErrorIs(t, err, bls12381keys.ErrMalformedInput)

	_, err = bls12381keys.UnmarshalG2PublicKey(g1Bytes)
	require.ErrorIs(t, err, bls12381keys.ErrMalformedInput)
}

func TestBlindingFactor_Marshal(t *testing.T) {
	bf, _, _, err := bls12381keys.GenerateBlindedG2Key(nil)
	require.NoError(t, err)

	bfBytes, err := bf.Marshal()
	require.NoError(t, err)

	bfUnmarshalled, err := bls12381keys.UnmarshalBlindingFactor(bfBytes)
	require.NoError(t, err)

	remarshalled, err := bfUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, bfBytes, remarshalled)

	_, err = bls12381keys.UnmarshalBlindingFactor(bfBytes[1:])
	require.ErrorIs(t, err, bls12381keys.ErrMalformedInput)
}

func TestConcurrentGeneration(t *testing.T) {
	const workers = 16

	seed := []byte("concurrent seed")
	_, expected := marshalG1(t, seed)

	var wg sync.WaitGroup

	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, priv, err := bls12381keys.GenerateG1Key(seed)
			if err != nil {
				errs <- err
				return
			}

			privBytes, _ := priv.Marshal() //nolint:errcheck
			if !bytes.Equal(expected, privBytes) {
				errs <- errors.New("unexpected secret key")
			}

			if _, _, err = bls12381keys.GenerateG2Key(nil); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func marshalG1(t *testing.T, seed []byte) ([]byte, []byte) {
	t.Helper()

	pub, priv, err := bls12381keys.GenerateG1Key(seed)
	require.NoError(t, err)

	return marshalPair(t, pub, priv)
}

func marshalG2(t *testing.T, seed []byte) ([]byte, []byte) {
	t.Helper()

	pub, priv, err := bls12381keys.GenerateG2Key(seed)
	require.NoError(t, err)

	return marshalPair(t, pub, priv)
}

func marshalBlindedG1(t *testing.T, seed []byte) ([]byte, []byte, []byte) {
	t.Helper()

	bf, pub, priv, err := bls12381keys.GenerateBlindedG1Key(seed)
	require.NoError(t, err)

	bfBytes, err := bf.Marshal()
	require.NoError(t, err)

	pubBytes, privBytes := marshalPair(t, pub, priv)

	return bfBytes, pubBytes, privBytes
}

func marshalBlindedG2(t *testing.T, seed []byte) ([]byte, []byte, []byte) {
	t.Helper()

	bf, pub, priv, err := bls12381keys.GenerateBlindedG2Key(seed)
	require.NoError(t, err)

	bfBytes, err := bf.Marshal()
	require.NoError(t, err)

	pubBytes, privBytes := marshalPair(t, pub, priv)

	return bfBytes, pubBytes, privBytes
}

type marshaller interface {
	Marshal() ([]byte, error)
}

func marshalPair(t *testing.T, pub marshaller, priv *bls12381keys.PrivateKey) ([]byte, []byte) {
	t.Helper()

	pubBytes, err := pub.Marshal()
	require.NoError(t, err)

	privBytes, err := priv.Marshal()
	require.NoError(t, err)

	return pubBytes, privBytes
}

func secretBytes(t *testing.T, priv *bls12381keys.PrivateKey) []byte {
	t.Helper()

	privBytes, err := priv.Marshal()
	require.NoError(t, err)

	return privBytes
}
