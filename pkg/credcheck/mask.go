package credcheck

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Mask renders a secret for display: the first at most 8 and last at
// most 4 characters joined by an ellipsis. The middle of the secret is
// never revealed. Very short secrets may be shown in full; the caller
// accepts that, since they fit inside the revealed bounds anyway.
func Mask(secret string) string {
	lead := len(secret)
	if lead > 8 {
		lead = 8
	}
	trail := len(secret) - lead
	if trail > 4 {
		trail = 4
	}
	return secret[:lead] + "…" + secret[len(secret)-trail:]
}

// Fingerprint returns a short stable digest of a secret so operators can
// compare credentials across machines without revealing them.
func Fingerprint(secret string) string {
	sum := blake3.Sum256([]byte(secret))
	return "b3:" + hex.EncodeToString(sum[:4])
}
