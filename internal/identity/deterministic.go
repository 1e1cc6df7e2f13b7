package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "sitecms:"

// UUID derives a stable UUID from key with go-hashid, falling back to a SHA1
// name UUID when hashing fails. Keys should be namespaced by entity type.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SettingsUUID identifies the settings record of a site.
func SettingsUUID(siteKey string) uuid.UUID {
	return UUID(keyPrefix + "settings:" + strings.ToLower(strings.TrimSpace(siteKey)))
}

// ServiceUUID identifies an offered service by its slug.
func ServiceUUID(slug string) uuid.UUID {
	return UUID(keyPrefix + "service:" + strings.ToLower(strings.TrimSpace(slug)))
}
