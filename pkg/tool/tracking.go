package tool

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"
)

const trackingPrefix = "DECO"

// trackingEncoding is base32 without padding; 5 random bytes encode to
// exactly 8 characters (40 bits of entropy per id).
var trackingEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateTrackingID returns a customer-facing booking reference of the
// form DECO-20240101-ABCDEFGH. The date is UTC; the suffix comes from
// crypto/rand, so concurrent callers need no coordination.
func GenerateTrackingID(now time.Time) string {
	var buf [5]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("tracking id entropy: %v", err))
	}
	suffix := trackingEncoding.EncodeToString(buf[:])
	return fmt.Sprintf("%s-%s-%s", trackingPrefix, now.UTC().Format("20060102"), suffix)
}
