package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== OTP ====================

// GenerateOTP creates a fixed-width numeric code. Leading zeros are
// kept, so a 6-digit code may look like "042917".
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	rand.New(rand.NewSource(time.Now().UnixNano()))

	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteString(fmt.Sprintf("%d", rand.Intn(10)))
	}

	return sb.String()
}

// ==================== STORAGE KEYS ====================

// GenerateStorageKey builds an object key like resumes/2026/08/<uuid>
func GenerateStorageKey(prefix string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%s", prefix, now.Year(), int(now.Month()), uuid.New().String())
}
