package entity

import (
	"time"
)

type OTPPurpose string

const (
	OTPPurposeRegistration  OTPPurpose = "registration"
	OTPPurposePasswordReset OTPPurpose = "password-reset"
)

// MaxOTPAttempts is the default wrong-code budget before the entry is
// discarded and a resend is required. Overridable via OTP_MAX_ATTEMPTS.
const MaxOTPAttempts = 3

// DefaultOTPTTL is the verification window for a freshly issued code.
const DefaultOTPTTL = 10 * time.Minute

type OTPEntry struct {
	BaseSimple
	Email     string     `db:"email"`
	Code      string     `db:"code"`
	Purpose   OTPPurpose `db:"purpose"`
	ExpiresAt time.Time  `db:"expires_at"`
	Attempts  int        `db:"attempts"`
	Verified  bool       `db:"verified"`
}

// IsExpired reports whether the entry is past its verification window.
// Expiry is always checked at read time; the periodic sweep only trims rows.
func (o *OTPEntry) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
