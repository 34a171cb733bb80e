package dilithium

import (
	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/subtle"
	"github.com/vaultsandbox/pqcrypto/secmem"
)

// PublicKey is a verification key bound to one parameter set.
type PublicKey struct {
	params *ParameterSet
	bytes  []byte
}

// SecretKey is a signing key bound to one parameter set. Call Wipe
// once the key is no longer needed.
type SecretKey struct {
	params *ParameterSet
	bytes  []byte
}

// Signature is an encoded signature bound to one parameter set.
type Signature struct {
	params *ParameterSet
	bytes  []byte
}

// ParsePublicKey validates the length of an encoded public key and
// returns it as a PublicKey for this parameter set.
func (p *ParameterSet) ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != p.PublicKeySize() {
		return nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidKeySize, p.name+" public key", p.PublicKeySize(), len(b))
	}
	pk := &PublicKey{params: p, bytes: make([]byte, len(b))}
	copy(pk.bytes, b)
	return pk, nil
}

// ParseSecretKey validates the length of an encoded secret key and
// returns it as a SecretKey for this parameter set.
func (p *ParameterSet) ParseSecretKey(b []byte) (*SecretKey, error) {
	if len(b) != p.SecretKeySize() {
		return nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidKeySize, p.name+" secret key", p.SecretKeySize(), len(b))
	}
	sk := &SecretKey{params: p, bytes: make([]byte, len(b))}
	copy(sk.bytes, b)
	return sk, nil
}

// ParseSignature validates the length of an encoded signature and
// returns it as a Signature for this parameter set. Content defects
// beyond the length, such as malformed hint encodings, surface as a
// failed Verify rather than a parse error.
func (p *ParameterSet) ParseSignature(b []byte) (*Signature, error) {
	if len(b) != p.SignatureSize() {
		return nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidSignature, p.name+" signature", p.SignatureSize(), len(b))
	}
	sig := &Signature{params: p, bytes: make([]byte, len(b))}
	copy(sig.bytes, b)
	return sig, nil
}

// Params returns the parameter set the key belongs to.
func (pk *PublicKey) Params() *ParameterSet { return pk.params }

// Bytes returns a copy of the encoded public key.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, len(pk.bytes))
	copy(out, pk.bytes)
	return out
}

// Equal reports whether two public keys have the same parameter set
// and encoding.
func (pk *PublicKey) Equal(o *PublicKey) bool {
	if pk == nil || o == nil {
		return pk == o
	}
	return pk.params == o.params && subtle.Equal(pk.bytes, o.bytes)
}

// Params returns the parameter set the key belongs to.
func (sk *SecretKey) Params() *ParameterSet { return sk.params }

// Bytes returns a copy of the encoded secret key.
func (sk *SecretKey) Bytes() []byte {
	out := make([]byte, len(sk.bytes))
	copy(out, sk.bytes)
	return out
}

// Equal reports whether two secret keys have the same parameter set
// and encoding. The comparison runs in constant time.
func (sk *SecretKey) Equal(o *SecretKey) bool {
	if sk == nil || o == nil {
		return sk == o
	}
	return sk.params == o.params && subtle.Equal(sk.bytes, o.bytes)
}

// Wipe zeroizes the secret key material and invalidates the key.
// Signing with a wiped key fails with ErrInvalidKeySize.
func (sk *SecretKey) Wipe() {
	secmem.Wipe(sk.bytes)
	sk.bytes = nil
}

// Params returns the parameter set the signature belongs to.
func (sig *Signature) Params() *ParameterSet { return sig.params }

// Bytes returns a copy of the encoded signature.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, len(sig.bytes))
	copy(out, sig.bytes)
	return out
}

// Equal reports whether two signatures have the same parameter set and
// encoding.
func (sig *Signature) Equal(o *Signature) bool {
	if sig == nil || o == nil {
		return sig == o
	}
	return sig.params == o.params && subtle.Equal(sig.bytes, o.bytes)
}
