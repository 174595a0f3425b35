package utils

import (
	"crypto/sha1"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// GenerateID a new random id without dashes
func GenerateID() string {
	uuidStr := uuid.NewString()
	uuidStr = strings.ReplaceAll(uuidStr, "-", "")
	return uuidStr
}

// ContentHash the sha1 hash of the content, used as the content hash of stored files
func ContentHash(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// StringHash the sha1 hash of a string, used as resource hash of urls
func StringHash(s string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(s)))
}

// IsContentHash checks the format of a content hash, 40 lower hex chars
func IsContentHash(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
