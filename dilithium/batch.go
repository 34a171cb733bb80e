package dilithium

import (
	"fmt"

	"github.com/vaultsandbox/pqcrypto"
)

// VerifyBatch checks each signature against its key and message and
// reports whether every one verifies. The three slices must have the
// same length; a mismatch is the only error condition, an invalid
// signature simply makes the result false.
func VerifyBatch(pks []*PublicKey, msgs [][]byte, sigs []*Signature) (bool, error) {
	if len(pks) != len(msgs) || len(msgs) != len(sigs) {
		return false, fmt.Errorf("%w: batch slices have lengths %d, %d and %d",
			pqcrypto.ErrInvalidParameter, len(pks), len(msgs), len(sigs))
	}
	for i := range pks {
		if pks[i] == nil || !pks[i].Verify(msgs[i], sigs[i]) {
			return false, nil
		}
	}
	return true, nil
}
