package mailer

import (
	"fmt"
)

// DevMailer prints emails to stdout instead of sending them
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendOTPEmail(toEmail, code, purpose string) error {
	fmt.Printf("\n[DEV MAIL] OTP email\nTo: %s\nPurpose: %s\nCode: %s\n\n", toEmail, purpose, code)
	return nil
}

func (d *DevMailer) SendApprovalEmail(toEmail, fullname string) error {
	fmt.Printf("\n[DEV MAIL] Approval email\nTo: %s (%s)\n\n", toEmail, fullname)
	return nil
}

func (d *DevMailer) SendRejectionEmail(toEmail, fullname, reason, blockDuration string) error {
	fmt.Printf("\n[DEV MAIL] Rejection email\nTo: %s (%s)\nReason: %s\nBlock: %s\n\n", toEmail, fullname, reason, blockDuration)
	return nil
}
