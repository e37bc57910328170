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

// APIKey identifies a developer's tracking integration. Only the SHA-256 hash
// and a display prefix are stored; the raw secret is shown once at creation.
type APIKey struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	DeveloperID uint           `gorm:"not null;index" json:"developer_id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	KeyHash     string         `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	KeyPrefix   string         `gorm:"type:varchar(20);not null" json:"key_prefix"`
	Active      bool           `gorm:"default:true" json:"active"`
	LastUsedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"last_used_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

var apiKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const rawKeyPrefix = "jag_"

// IssueAPIKey generates a new API key, stores its hash material on the struct,
// and returns the raw secret. Callers must persist the struct afterwards.
func (k *APIKey) IssueAPIKey() (string, error) {
	rawKey, prefix, hash, err := generateAPIKeyMaterial()
	if err != nil {
		return "", err
	}
	k.KeyHash = hash
	k.KeyPrefix = prefix
	k.Active = true
	k.LastUsedAt = nil
	return rawKey, nil
}

// TouchUsage updates the last-used timestamp metadata.
func (k *APIKey) TouchUsage() {
	now := time.Now()
	k.LastUsedAt = &now
}

// HashAPIKey returns the SHA-256 hash for the provided API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

func generateAPIKeyMaterial() (string, string, string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", "", err
	}
	encoded := strings.ToLower(apiKeyEncoding.EncodeToString(b))
	rawKey := rawKeyPrefix + encoded
	if len(rawKey) < 12 {
		return "", "", "", fmt.Errorf("api key generation failed: key too short")
	}
	prefix := rawKey[:min(len(rawKey), 16)]
	hash := HashAPIKey(rawKey)
	return rawKey, prefix, hash, nil
}
