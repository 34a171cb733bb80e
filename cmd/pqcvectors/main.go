package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/dilithium"
	"github.com/vaultsandbox/pqcrypto/kyber"
)

// Config carries the streams commands read and write, so tests can
// substitute buffers for the process stdio.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

var exitFunc = os.Exit

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pqcvectors <command>, one of kem-keygen, kem-encap, kem-decap, sign-keygen, sign, verify")
	}

	switch args[1] {
	case "kem-keygen":
		return runKEMKeygen(cfg)
	case "kem-encap":
		return runKEMEncap(cfg)
	case "kem-decap":
		return runKEMDecap(cfg)
	case "sign-keygen":
		return runSignKeygen(cfg)
	case "sign":
		return runSign(cfg)
	case "verify":
		return runVerify(cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// KeyPairOutput is the JSON shape every keygen command emits.
type KeyPairOutput struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

type KEMKeygenRequest struct {
	K    int    `json:"k"`
	Seed string `json:"seed"`
}

func runKEMKeygen(cfg *Config) error {
	var req KEMKeygenRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := kyber.ForRank(req.K)
	if err != nil {
		return err
	}
	seed, err := decodeHex("seed", req.Seed)
	if err != nil {
		return err
	}

	pk, sk, err := params.DeriveKeyPair(seed)
	if err != nil {
		return err
	}
	defer sk.Wipe()

	return writeJSON(cfg, KeyPairOutput{
		PublicKey: hex.EncodeToString(pk.Bytes()),
		SecretKey: hex.EncodeToString(sk.Bytes()),
	})
}

type KEMEncapRequest struct {
	K         int    `json:"k"`
	PublicKey string `json:"publicKey"`
	Seed      string `json:"seed"`
}

type KEMEncapOutput struct {
	Ciphertext   string `json:"ciphertext"`
	SharedSecret string `json:"sharedSecret"`
}

func runKEMEncap(cfg *Config) error {
	var req KEMEncapRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := kyber.ForRank(req.K)
	if err != nil {
		return err
	}
	pkBytes, err := decodeHex("publicKey", req.PublicKey)
	if err != nil {
		return err
	}
	seed, err := decodeHex("seed", req.Seed)
	if err != nil {
		return err
	}

	pk, err := params.ParsePublicKey(pkBytes)
	if err != nil {
		return err
	}
	// The encapsulation coins come from a seed-keyed stream, so the
	// same request always yields the same vector.
	ct, ss, err := pk.Encapsulate(pqcrypto.NewDeterministicRandom(seed))
	if err != nil {
		return err
	}
	defer ss.Wipe()

	return writeJSON(cfg, KEMEncapOutput{
		Ciphertext:   hex.EncodeToString(ct.Bytes()),
		SharedSecret: hex.EncodeToString(ss.Bytes()),
	})
}

type KEMDecapRequest struct {
	K          int    `json:"k"`
	SecretKey  string `json:"secretKey"`
	Ciphertext string `json:"ciphertext"`
}

type KEMDecapOutput struct {
	SharedSecret string `json:"sharedSecret"`
}

func runKEMDecap(cfg *Config) error {
	var req KEMDecapRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := kyber.ForRank(req.K)
	if err != nil {
		return err
	}
	skBytes, err := decodeHex("secretKey", req.SecretKey)
	if err != nil {
		return err
	}
	ctBytes, err := decodeHex("ciphertext", req.Ciphertext)
	if err != nil {
		return err
	}

	sk, err := params.ParseSecretKey(skBytes)
	if err != nil {
		return err
	}
	defer sk.Wipe()
	ct, err := params.ParseCiphertext(ctBytes)
	if err != nil {
		return err
	}
	ss, err := sk.Decapsulate(ct)
	if err != nil {
		return err
	}
	defer ss.Wipe()

	return writeJSON(cfg, KEMDecapOutput{
		SharedSecret: hex.EncodeToString(ss.Bytes()),
	})
}

type SignKeygenRequest struct {
	Level int    `json:"level"`
	Seed  string `json:"seed"`
}

func runSignKeygen(cfg *Config) error {
	var req SignKeygenRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := dilithium.ForLevel(req.Level)
	if err != nil {
		return err
	}
	seed, err := decodeHex("seed", req.Seed)
	if err != nil {
		return err
	}

	pk, sk, err := params.DeriveKeyPair(seed)
	if err != nil {
		return err
	}
	defer sk.Wipe()

	return writeJSON(cfg, KeyPairOutput{
		PublicKey: hex.EncodeToString(pk.Bytes()),
		SecretKey: hex.EncodeToString(sk.Bytes()),
	})
}

type SignRequest struct {
	Level     int    `json:"level"`
	SecretKey string `json:"secretKey"`
	Message   string `json:"message"`
}

type SignOutput struct {
	Signature string `json:"signature"`
}

func runSign(cfg *Config) error {
	var req SignRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := dilithium.ForLevel(req.Level)
	if err != nil {
		return err
	}
	skBytes, err := decodeHex("secretKey", req.SecretKey)
	if err != nil {
		return err
	}
	msg, err := decodeHex("message", req.Message)
	if err != nil {
		return err
	}

	sk, err := params.ParseSecretKey(skBytes)
	if err != nil {
		return err
	}
	defer sk.Wipe()
	sig, err := sk.SignDeterministic(msg)
	if err != nil {
		return err
	}

	return writeJSON(cfg, SignOutput{
		Signature: hex.EncodeToString(sig.Bytes()),
	})
}

type VerifyRequest struct {
	Level     int    `json:"level"`
	PublicKey string `json:"publicKey"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type VerifyOutput struct {
	Valid bool `json:"valid"`
}

func runVerify(cfg *Config) error {
	var req VerifyRequest
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	params, err := dilithium.ForLevel(req.Level)
	if err != nil {
		return err
	}
	pkBytes, err := decodeHex("publicKey", req.PublicKey)
	if err != nil {
		return err
	}
	msg, err := decodeHex("message", req.Message)
	if err != nil {
		return err
	}
	sigBytes, err := decodeHex("signature", req.Signature)
	if err != nil {
		return err
	}

	pk, err := params.ParsePublicKey(pkBytes)
	if err != nil {
		return err
	}
	sig, err := params.ParseSignature(sigBytes)
	if err != nil {
		// A malformed signature is a verification failure, not a tool
		// failure.
		return writeJSON(cfg, VerifyOutput{Valid: false})
	}

	return writeJSON(cfg, VerifyOutput{Valid: pk.Verify(msg, sig)})
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}
	return b, nil
}

func writeJSON(cfg *Config, v any) error {
	if err := json.NewEncoder(cfg.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
