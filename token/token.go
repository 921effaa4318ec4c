package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewAlias produces an opaque public token for a registrant. The reference
// and timestamp keep tokens human-traceable in the ledger; the UUID fragment
// carries the entropy that makes collisions overwhelmingly unlikely.
// Uniqueness is still enforced by the store's unique index, not here.
func NewAlias(ref string) string {
	if ref == "" {
		ref = "sin-ref"
	}
	frag := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("alias-%s-%d-%s", ref, time.Now().UnixMilli(), frag)
}
