package mailer

import "job-portal/pkg/utils"

// Service sends the transactional emails the platform needs. Sends are
// best-effort for approval/rejection notices; OTP delivery failures are
// surfaced to the caller.
type Service interface {
	SendOTPEmail(toEmail, code, purpose string) error
	SendApprovalEmail(toEmail, fullname string) error
	SendRejectionEmail(toEmail, fullname, reason, blockDuration string) error
}

// New picks an implementation based on config
func New(cfg utils.EmailConfig, frontendURL string) Service {
	switch cfg.Provider {
	case "mailersend":
		return NewMailerSend(cfg.APIKey, cfg.FromName, cfg.From, frontendURL)
	case "smtp":
		return NewSMTPMailer(cfg.Host, cfg.Port, cfg.From, cfg.User, cfg.Password, frontendURL)
	default:
		return NewDevMailer()
	}
}

// reapplyTimeframe renders a block duration for rejection emails
func reapplyTimeframe(blockDuration string) string {
	switch blockDuration {
	case "1week":
		return "You may reapply after 1 week."
	case "2weeks":
		return "You may reapply after 2 weeks."
	case "1month":
		return "You may reapply after 1 month."
	case "2months":
		return "You may reapply after 2 months."
	case "permanent":
		return "You are not eligible to reapply."
	default:
		return "You may reapply at any time."
	}
}
