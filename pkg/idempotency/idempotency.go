// Package idempotency reads the client-supplied replay key for order
// placement. A request carrying a key the service has already recorded
// is answered with the original order instead of being placed again.
package idempotency

import (
	"net/http"
	"strings"
)

const Header = "Idempotency-Key"

// maxKeyLength matches the order_idempotency column width; longer keys
// are treated as absent rather than truncated.
const maxKeyLength = 128

// Key extracts the idempotency key from a placement request. Empty
// means the client opted out of replay protection.
func Key(r *http.Request) string {
	k := strings.TrimSpace(r.Header.Get(Header))
	if len(k) > maxKeyLength {
		return ""
	}
	return k
}
