// Package storage talks to the two media providers: Cloudinary for signed
// direct uploads (the browser sends the bytes itself) and Appwrite for the
// server-side proxy upload path.
package storage

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the Cloudinary signing protocol.
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSecretUnset reports a missing Cloudinary API secret. This is a server
// configuration problem, not a client error, and is surfaced as such.
var ErrSecretUnset = errors.New("cloudinary API secret is not configured")

// Signature computes the Cloudinary upload signature over the given
// parameters. The provider verifies it bit-exactly: key=value pairs joined
// by "&" with keys sorted ascending, concatenated with the secret (no
// separator, no HMAC), hashed with SHA-1, lowercase hex.
func Signature(timestamp int64, folder, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretUnset
	}

	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if folder != "" {
		params["folder"] = folder
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	toSign := strings.Join(pairs, "&") + secret
	digest := sha1.Sum([]byte(toSign)) //nolint:gosec // see above
	return hex.EncodeToString(digest[:]), nil
}
