package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// APIToken stores the bearer-token credential for a user's API access.
// Only the SHA-256 hash of the token is persisted.
type APIToken struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex" json:"user_id"`
	TokenHash      string         `gorm:"type:char(64);default:''" json:"-"`
	TokenPrefix    string         `gorm:"type:varchar(20);default:''" json:"token_prefix"`
	TokenCreatedAt *time.Time     `json:"token_created_at"`
	TokenLastUsedAt *time.Time    `json:"token_last_used_at"`
	TokenRevokedAt *time.Time     `json:"token_revoked_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const tokenPrefix = "nwh_"

// GetOrCreateAPIToken returns the user's credential row, creating an
// empty one when none exists yet.
func GetOrCreateAPIToken(db *gorm.DB, userID uint) (*APIToken, error) {
	var t APIToken
	if err := db.Where("user_id = ?", userID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			t = APIToken{UserID: userID}
			if err := db.Create(&t).Error; err != nil {
				return nil, err
			}
			return &t, nil
		}
		return nil, err
	}
	return &t, nil
}

// IsActive reports whether the user has an active token configured.
func (t *APIToken) IsActive() bool {
	return t != nil && t.TokenHash != "" && t.TokenRevokedAt == nil
}

// Issue generates a new bearer token, stores its metadata on the struct,
// and returns the raw secret. Callers must persist the struct afterwards.
func (t *APIToken) Issue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	raw := tokenPrefix + strings.ToLower(tokenEncoding.EncodeToString(b))
	if len(raw) < 12 {
		return "", fmt.Errorf("token generation failed: token too short")
	}

	now := time.Now()
	t.TokenHash = HashAPIToken(raw)
	t.TokenPrefix = raw[:16]
	t.TokenCreatedAt = &now
	t.TokenRevokedAt = nil
	t.TokenLastUsedAt = nil
	return raw, nil
}

// Revoke clears the stored token metadata without deleting the record.
func (t *APIToken) Revoke() {
	t.TokenHash = ""
	t.TokenPrefix = ""
	now := time.Now()
	t.TokenRevokedAt = &now
	t.TokenLastUsedAt = nil
}

// TouchUsage updates the last-used timestamp metadata.
func (t *APIToken) TouchUsage() {
	now := time.Now()
	t.TokenLastUsedAt = &now
}

// HashAPIToken returns the SHA-256 hash for the provided bearer token.
func HashAPIToken(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
