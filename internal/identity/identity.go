// Package identity derives stable content-addressed identifiers for articles.
package identity

import (
	"crypto/sha512"
	"encoding/hex"
)

// ResolveID computes the article identifier from its URL identity: the
// canonical URL when the publisher declares one, otherwise the URL the page
// was fetched from. The same identity URL always yields the same id, so
// observations of one story from any batch, source or category converge on
// one articles document.
func ResolveID(canonicalURL, originalURL string) string {
	identityURL := canonicalURL
	if identityURL == "" {
		identityURL = originalURL
	}

	sum := sha512.Sum384([]byte(identityURL))
	return hex.EncodeToString(sum[:])
}
