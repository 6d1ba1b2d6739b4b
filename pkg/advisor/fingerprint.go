package advisor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

const fingerprintPrefix = "farm:v1:"

// Fingerprint returns the cache key for a canonical request: a hash of its
// JSON encoding. Struct field order fixes the encoding, so equal requests
// always share a key. It fails only for requests NormalizeRequest would not
// produce, such as non-finite water inches.
func Fingerprint(req *domain.FarmRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding farm request: %w", err)
	}
	sum := sha256.Sum256(data)
	return fingerprintPrefix + hex.EncodeToString(sum[:]), nil
}
