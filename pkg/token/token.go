// Package token makes and recognizes the opaque 32-hex strings used as lock
// owners and idempotency keys.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

const Len = 32

var (
	reHex  = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
)

// New returns 16 random bytes as lowercase hex.
func New() string {
	b := make([]byte, Len/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// IsHex reports whether s has the shape New produces.
func IsHex(s string) bool { return reHex.MatchString(s) }

// IsClientKey accepts a token or a lowercase RFC 4122 UUID (versions 1-5),
// the two forms clients send as idempotency keys.
func IsClientKey(s string) bool {
	s = strings.TrimSpace(s)
	return IsHex(s) || reUUID.MatchString(s)
}
