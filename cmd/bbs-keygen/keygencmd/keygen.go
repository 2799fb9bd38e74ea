/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keygencmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/doc/util/fingerprint"
)

const (
	seedFlagName  = "seed"
	seedEnvKey    = "BBSKEYS_SEED"
	seedFlagUsage = "Seed used to derive the keys, in the selected encoding. A fresh random seed is used when empty." +
		" Alternatively, this can be set with the following environment variable: " + seedEnvKey

	encodingFlagName  = "encoding"
	encodingEnvKey    = "BBSKEYS_ENCODING"
	encodingFlagUsage = "Encoding of keys and seeds. Possible values [base58] [base64url] [hex]. Default is base58." +
		" base58 values are raw base58 (bitcoin alphabet). base64url and hex values, both read and written, are" +
		" multibase strings: base64url carries the 'u' prefix and hex carries the 'f' prefix." +
		" Alternatively, this can be set with the following environment variable: " + encodingEnvKey

	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "BBSKEYS_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	secretKeyFlagName  = "secret-key"
	secretKeyEnvKey    = "BBSKEYS_SECRET_KEY"
	secretKeyFlagUsage = "Secret key in the selected encoding." +
		" Alternatively, this can be set with the following environment variable: " + secretKeyEnvKey

	messageCountFlagName  = "message-count"
	messageCountEnvKey    = "BBSKEYS_MESSAGE_COUNT"
	messageCountFlagUsage = "Number of messages the BBS+ public key signs." +
		" Alternatively, this can be set with the following environment variable: " + messageCountEnvKey

	publicKeyFlagName  = "public-key"
	publicKeyEnvKey    = "BBSKEYS_PUBLIC_KEY"
	publicKeyFlagUsage = "Compressed BBS+ public key in the selected encoding." +
		" Alternatively, this can be set with the following environment variable: " + publicKeyEnvKey
)

var logger = log.New("bbs-keys/cmd")

// KeyPair is the output of the generation commands.
type KeyPair struct {
	SecretKey          string `json:"secretKey"`
	PublicKey          string `json:"publicKey"`
	BlindingFactor     string `json:"blindingFactor,omitempty"`
	BlindingCommitment string `json:"blindingCommitment,omitempty"`
	DIDKey             string `json:"didKey"`
	KeyID              string `json:"keyId"`
}

// BBSPublicKey is the output of the derive-public and inspect commands.
type BBSPublicKey struct {
	PublicKey    string `json:"publicKey"`
	MessageCount int    `json:"messageCount"`
	Size         int    `json:"size"`
	DIDKey       string `json:"didKey"`
}

// Cmd returns the bbs-keygen command with all of its subcommands.
func Cmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bbs-keygen",
		Short: "BLS12-381 and BBS+ key generation",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(
		generateCmd("g1", "Generate a BLS12-381 key pair with the public key in G1", generateG1),
		generateCmd("g2", "Generate a BLS12-381 key pair with the public key in G2", generateG2),
		generateCmd("g1g2", "Generate a BLS12-381 secret key with both its G1 and G2 public keys", generateG1G2),
		generateCmd("blinded-g1", "Generate a blinded BLS12-381 key pair with the public key in G1",
			generateBlindedG1),
		generateCmd("blinded-g2", "Generate a blinded BLS12-381 key pair with the public key in G2",
			generateBlindedG2),
		derivePublicCmd(),
		inspectCmd(),
	)

	return rootCmd
}

type generateFunc func(seed []byte, enc string) (*KeyPair, error)

func generateCmd(use, short string, generate generateFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := setup(cmd)
			if err != nil {
				return err
			}

			seedValue, err := getUserSetVar(cmd, seedFlagName, seedEnvKey, true)
			if err != nil {
				return err
			}

			var seed []byte

			if seedValue != "" {
				seed, err = decode(enc, seedValue)
				if err != nil {
					return fmt.Errorf("decode seed: %w", err)
				}
			}

			if len(seed) == 0 {
				logger.Debugf("no seed set, using a random seed")
			}

			keyPair, err := generate(seed, enc)
			if err != nil {
				return fmt.Errorf("generate %s key: %w", use, err)
			}

			return writeJSON(cmd, keyPair)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP(seedFlagName, "", "", seedFlagUsage)

	return cmd
}

func derivePublicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-public",
		Short: "Derive the BBS+ public key of a secret key for a number of messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := setup(cmd)
			if err != nil {
				return err
			}

			secretKeyValue, err := getUserSetVar(cmd, secretKeyFlagName, secretKeyEnvKey, false)
			if err != nil {
				return err
			}

			secretKey, err := decode(enc, secretKeyValue)
			if err != nil {
				return fmt.Errorf("decode secret key: %w", err)
			}

			messageCountValue, err := getUserSetVar(cmd, messageCountFlagName, messageCountEnvKey, false)
			if err != nil {
				return err
			}

			messageCount, err := strconv.Atoi(messageCountValue)
			if err != nil {
				return fmt.Errorf("invalid message count '%s': %w", messageCountValue, err)
			}

			pkwg, err := bbs12381g2pub.DerivePublicKey(secretKey, messageCount)
			if err != nil {
				logger.Debugf("derive public key failed (%s)", bls12381keys.KindOf(err))

				return fmt.Errorf("derive public key: %w", err)
			}

			out, err := bbsPublicKey(pkwg, enc)
			if err != nil {
				return err
			}

			return writeJSON(cmd, out)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP(secretKeyFlagName, "", "", secretKeyFlagUsage)
	cmd.Flags().StringP(messageCountFlagName, "", "", messageCountFlagUsage)

	return cmd
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Parse and validate a compressed BBS+ public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := setup(cmd)
			if err != nil {
				return err
			}

			publicKeyValue, err := getUserSetVar(cmd, publicKeyFlagName, publicKeyEnvKey, false)
			if err != nil {
				return err
			}

			publicKey, err := decode(enc, publicKeyValue)
			if err != nil {
				return fmt.Errorf("decode public key: %w", err)
			}

			pkwg, err := bbs12381g2pub.UnmarshalPublicKeyWithGenerators(publicKey)
			if err != nil {
				return fmt.Errorf("parse public key: %w", err)
			}

			if err = pkwg.Validate(); err != nil {
				return fmt.Errorf("validate public key: %w", err)
			}

			out, err := bbsPublicKey(pkwg, enc)
			if err != nil {
				return err
			}

			return writeJSON(cmd, out)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP(publicKeyFlagName, "", "", publicKeyFlagUsage)

	return cmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(encodingFlagName, "", "", encodingFlagUsage)
	cmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
}

// setup applies the log level and returns the selected encoding.
func setup(cmd *cobra.Command) (string, error) {
	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return "", err
	}

	if err = setLogLevel(logLevel); err != nil {
		return "", err
	}

	enc, err := getUserSetVar(cmd, encodingFlagName, encodingEnvKey, true)
	if err != nil {
		return "", err
	}

	if enc == "" {
		enc = encodingBase58
	}

	if err = checkEncoding(enc); err != nil {
		return "", err
	}

	return enc, nil
}

func generateG1(seed []byte, enc string) (*KeyPair, error) {
	pubKey, privKey, err := bls12381keys.GenerateG1Key(seed)
	if err != nil {
		return nil, err
	}

	return keyPair(enc, fingerprint.BLS12381g1PubKeyMultiCodec, pubKey, privKey)
}

func generateG2(seed []byte, enc string) (*KeyPair, error) {
	pubKey, privKey, err := bls12381keys.GenerateG2Key(seed)
	if err != nil {
		return nil, err
	}

	return keyPair(enc, fingerprint.BLS12381g2PubKeyMultiCodec, pubKey, privKey)
}

// generateG1G2 relies on G1 and G2 keys from the same seed sharing one secret key.
func generateG1G2(seed []byte, enc string) (*KeyPair, error) {
	g1PubKey, privKey, err := bls12381keys.GenerateG1Key(seed)
	if err != nil {
		return nil, err
	}

	g1Bytes, err := g1PubKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal G1 public key: %w", err)
	}

	g2Bytes, err := privKey.G2PublicKey().Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal G2 public key: %w", err)
	}

	privKeyBytes, err := privKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal secret key: %w", err)
	}

	didKey, keyID, err := fingerprint.CreateBLS12381G1G2DIDKey(g1Bytes, g2Bytes)
	if err != nil {
		return nil, err
	}

	kp := &KeyPair{DIDKey: didKey, KeyID: keyID}

	if kp.PublicKey, err = encode(enc, append(g1Bytes, g2Bytes...)); err != nil {
		return nil, err
	}

	if kp.SecretKey, err = encode(enc, privKeyBytes); err != nil {
		return nil, err
	}

	return kp, nil
}

func generateBlindedG1(seed []byte, enc string) (*KeyPair, error) {
	bf, pubKey, privKey, err := bls12381keys.GenerateBlindedG1Key(seed)
	if err != nil {
		return nil, err
	}

	kp, err := keyPair(enc, fingerprint.BLS12381g1PubKeyMultiCodec, pubKey, privKey)
	if err != nil {
		return nil, err
	}

	return withBlinding(kp, enc, bf, bf.G1Commitment())
}

func generateBlindedG2(seed []byte, enc string) (*KeyPair, error) {
	bf, pubKey, privKey, err := bls12381keys.GenerateBlindedG2Key(seed)
	if err != nil {
		return nil, err
	}

	kp, err := keyPair(enc, fingerprint.BLS12381g2PubKeyMultiCodec, pubKey, privKey)
	if err != nil {
		return nil, err
	}

	return withBlinding(kp, enc, bf, bf.G2Commitment())
}

type marshaller interface {
	Marshal() ([]byte, error)
}

func keyPair(enc string, code uint64, pubKey, privKey marshaller) (*KeyPair, error) {
	pubKeyBytes, err := pubKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	privKeyBytes, err := privKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal secret key: %w", err)
	}

	didKey, keyID := fingerprint.CreateDIDKeyByCode(code, pubKeyBytes)

	kp := &KeyPair{DIDKey: didKey, KeyID: keyID}

	if kp.PublicKey, err = encode(enc, pubKeyBytes); err != nil {
		return nil, err
	}

	if kp.SecretKey, err = encode(enc, privKeyBytes); err != nil {
		return nil, err
	}

	return kp, nil
}

func withBlinding(kp *KeyPair, enc string, bf, commitment marshaller) (*KeyPair, error) {
	bfBytes, err := bf.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal blinding factor: %w", err)
	}

	commitmentBytes, err := commitment.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal blinding commitment: %w", err)
	}

	if kp.BlindingFactor, err = encode(enc, bfBytes); err != nil {
		return nil, err
	}

	if kp.BlindingCommitment, err = encode(enc, commitmentBytes); err != nil {
		return nil, err
	}

	return kp, nil
}

func bbsPublicKey(pkwg *bbs12381g2pub.PublicKeyWithGenerators, enc string) (*BBSPublicKey, error) {
	pkBytes, err := pkwg.MarshalCompressed()
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	wBytes, err := pkwg.PublicKey().Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal w: %w", err)
	}

	didKey, _ := fingerprint.CreateDIDKeyByCode(fingerprint.BLS12381g2PubKeyMultiCodec, wBytes)

	pk, err := encode(enc, pkBytes)
	if err != nil {
		return nil, err
	}

	return &BBSPublicKey{
		PublicKey:    pk,
		MessageCount: pkwg.MessagesCount(),
		Size:         len(pkBytes),
		DIDKey:       didKey,
	}, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return err
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Debugf("logger level set to %s", logLevel)
	}

	return nil
}
