package kyber

import (
	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/subtle"
	"github.com/vaultsandbox/pqcrypto/secmem"
)

// PublicKey is an encapsulation key bound to one parameter set.
type PublicKey struct {
	params *ParameterSet
	bytes  []byte
}

// SecretKey is a decapsulation key bound to one parameter set. It
// embeds a copy of the public key and the implicit-rejection secret.
// Call Wipe once the key is no longer needed.
type SecretKey struct {
	params *ParameterSet
	bytes  []byte
}

// Ciphertext is an encapsulated shared secret.
type Ciphertext struct {
	params *ParameterSet
	bytes  []byte
}

// SharedSecret is the 32-byte secret both sides of an encapsulation
// agree on. Call Wipe after the secret has been handed to a KDF or
// cipher.
type SharedSecret struct {
	bytes []byte
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

// ParseCiphertext validates the length of an encoded ciphertext and
// returns it as a Ciphertext for this parameter set.
func (p *ParameterSet) ParseCiphertext(b []byte) (*Ciphertext, error) {
	if len(b) != p.CiphertextSize() {
		return nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidCiphertext, p.name+" ciphertext", p.CiphertextSize(), len(b))
	}
	ct := &Ciphertext{params: p, bytes: make([]byte, len(b))}
	copy(ct.bytes, b)
	return ct, nil
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

// PublicKey extracts the public key embedded in the secret key.
func (sk *SecretKey) PublicKey() (*PublicKey, error) {
	if sk.params == nil || len(sk.bytes) != sk.params.SecretKeySize() {
		return nil, pqcrypto.ErrInvalidKeySize
	}
	p := sk.params
	return p.ParsePublicKey(sk.bytes[p.k*polyBytes : p.k*polyBytes+p.PublicKeySize()])
}

// Wipe zeroizes the secret key material and invalidates the key.
// Operations on a wiped key fail with ErrInvalidKeySize.
func (sk *SecretKey) Wipe() {
	secmem.Wipe(sk.bytes)
	sk.bytes = nil
}

// Params returns the parameter set the ciphertext belongs to.
func (ct *Ciphertext) Params() *ParameterSet { return ct.params }

// Bytes returns a copy of the encoded ciphertext.
func (ct *Ciphertext) Bytes() []byte {
	out := make([]byte, len(ct.bytes))
	copy(out, ct.bytes)
	return out
}

// Bytes returns a copy of the shared secret.
func (ss *SharedSecret) Bytes() []byte {
	out := make([]byte, len(ss.bytes))
	copy(out, ss.bytes)
	return out
}

// Equal compares two shared secrets in constant time.
func (ss *SharedSecret) Equal(o *SharedSecret) bool {
	if ss == nil || o == nil {
		return ss == o
	}
	return subtle.Equal(ss.bytes, o.bytes)
}

// Wipe zeroizes the shared secret. Bytes returns an empty slice
// afterwards.
func (ss *SharedSecret) Wipe() {
	secmem.Wipe(ss.bytes)
	ss.bytes = nil
}
