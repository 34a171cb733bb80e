package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stdin != os.Stdin {
		t.Error("DefaultConfig().Stdin should be os.Stdin")
	}
	if cfg.Stdout != os.Stdout {
		t.Error("DefaultConfig().Stdout should be os.Stdout")
	}
	if cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig().Stderr should be os.Stderr")
	}
}

func TestRun_NoArgs(t *testing.T) {
	cfg := &Config{Stdout: &bytes.Buffer{}}
	err := run([]string{"pqcvectors"}, cfg)
	if err == nil {
		t.Error("run() should return error with no args")
	}
	if !strings.Contains(err.Error(), "usage") {
		t.Errorf("error should contain 'usage', got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	cfg := &Config{Stdout: &bytes.Buffer{}}
	err := run([]string{"pqcvectors", "frobnicate"}, cfg)
	if err == nil {
		t.Error("run() should return error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error should contain 'unknown command', got %v", err)
	}
}

// invoke round-trips one command through run with a JSON request and
// decodes its JSON reply.
func invoke(t *testing.T, command string, req, out any) {
	t.Helper()
	reqJSON, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	stdout := &bytes.Buffer{}
	cfg := &Config{
		Stdin:  bytes.NewReader(reqJSON),
		Stdout: stdout,
	}
	if err := run([]string{"pqcvectors", command}, cfg); err != nil {
		t.Fatalf("run(%s): %v", command, err)
	}
	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		t.Fatalf("parse %s output: %v", command, err)
	}
}

func testSeed(length int, fill byte) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = fill ^ byte(i)
	}
	return hex.EncodeToString(b)
}

func TestRun_KEMVectorsAreDeterministic(t *testing.T) {
	req := KEMKeygenRequest{K: 3, Seed: testSeed(64, 0xA1)}

	var first, second KeyPairOutput
	invoke(t, "kem-keygen", req, &first)
	invoke(t, "kem-keygen", req, &second)

	if first != second {
		t.Error("same seed produced different key pairs")
	}
	if len(first.PublicKey) != 2*1184 {
		t.Errorf("public key hex is %d chars, want %d", len(first.PublicKey), 2*1184)
	}
	if len(first.SecretKey) != 2*2400 {
		t.Errorf("secret key hex is %d chars, want %d", len(first.SecretKey), 2*2400)
	}
}

func TestRun_KEMRoundTrip(t *testing.T) {
	var keys KeyPairOutput
	invoke(t, "kem-keygen", KEMKeygenRequest{K: 2, Seed: testSeed(64, 0x3C)}, &keys)

	var encap KEMEncapOutput
	invoke(t, "kem-encap", KEMEncapRequest{
		K:         2,
		PublicKey: keys.PublicKey,
		Seed:      testSeed(32, 0x77),
	}, &encap)

	var decap KEMDecapOutput
	invoke(t, "kem-decap", KEMDecapRequest{
		K:          2,
		SecretKey:  keys.SecretKey,
		Ciphertext: encap.Ciphertext,
	}, &decap)

	if decap.SharedSecret != encap.SharedSecret {
		t.Error("decapsulated secret does not match the encapsulated one")
	}
}

func TestRun_SignFlow(t *testing.T) {
	var keys KeyPairOutput
	invoke(t, "sign-keygen", SignKeygenRequest{Level: 2, Seed: testSeed(32, 0x5B)}, &keys)

	message := hex.EncodeToString([]byte("vector message"))
	var signed SignOutput
	invoke(t, "sign", SignRequest{
		Level:     2,
		SecretKey: keys.SecretKey,
		Message:   message,
	}, &signed)

	var verdict VerifyOutput
	invoke(t, "verify", VerifyRequest{
		Level:     2,
		PublicKey: keys.PublicKey,
		Message:   message,
		Signature: signed.Signature,
	}, &verdict)
	if !verdict.Valid {
		t.Error("signature did not verify")
	}

	invoke(t, "verify", VerifyRequest{
		Level:     2,
		PublicKey: keys.PublicKey,
		Message:   hex.EncodeToString([]byte("another message")),
		Signature: signed.Signature,
	}, &verdict)
	if verdict.Valid {
		t.Error("signature verified a different message")
	}
}

func TestRun_SignDeterministic(t *testing.T) {
	var keys KeyPairOutput
	invoke(t, "sign-keygen", SignKeygenRequest{Level: 3, Seed: testSeed(32, 0xE0)}, &keys)

	req := SignRequest{Level: 3, SecretKey: keys.SecretKey, Message: "00ff00ff"}
	var one, two SignOutput
	invoke(t, "sign", req, &one)
	invoke(t, "sign", req, &two)
	if one != two {
		t.Error("same request produced different signatures")
	}
}

func TestRun_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		command string
		input   string
	}{
		{"not json", "kem-keygen", "not json at all"},
		{"bad hex seed", "kem-keygen", `{"k":2,"seed":"zz"}`},
		{"bad rank", "kem-keygen", `{"k":7,"seed":""}`},
		{"short seed", "sign-keygen", `{"level":2,"seed":"00"}`},
		{"bad level", "sign-keygen", `{"level":9,"seed":""}`},
		{"bad secret key", "sign", `{"level":2,"secretKey":"00","message":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Stdin:  strings.NewReader(tt.input),
				Stdout: &bytes.Buffer{},
			}
			if err := run([]string{"pqcvectors", tt.command}, cfg); err == nil {
				t.Error("run() should return an error")
			}
		})
	}
}

func TestRun_VerifyMalformedSignature(t *testing.T) {
	var keys KeyPairOutput
	invoke(t, "sign-keygen", SignKeygenRequest{Level: 2, Seed: testSeed(32, 0x19)}, &keys)

	// A signature of the wrong length is reported as invalid rather
	// than failing the command.
	var verdict VerifyOutput
	invoke(t, "verify", VerifyRequest{
		Level:     2,
		PublicKey: keys.PublicKey,
		Message:   "00",
		Signature: "0011",
	}, &verdict)
	if verdict.Valid {
		t.Error("malformed signature reported valid")
	}
}

func TestFatal_FormatsCorrectly(t *testing.T) {
	originalExitFunc := exitFunc
	defer func() { exitFunc = originalExitFunc }()

	exitFunc = func(code int) {} // No-op

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fatal("error %d: %s", 42, "something went wrong")

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	expected := "error 42: something went wrong\n"
	if output != expected {
		t.Errorf("output = %q, want %q", output, expected)
	}
}
