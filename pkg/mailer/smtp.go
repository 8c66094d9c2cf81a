package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPMailer struct {
	Host        string
	Port        int
	From        string
	User        string
	Pass        string
	frontendURL string
}

func NewSMTPMailer(host string, port int, from, user, pass, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		Host:        strings.TrimSpace(host),
		Port:        port,
		From:        strings.TrimSpace(from),
		User:        strings.TrimSpace(user),
		Pass:        strings.TrimSpace(pass),
		frontendURL: frontendURL,
	}
}

func (s *SMTPMailer) SendOTPEmail(toEmail, code, purpose string) error {
	subject := "Verify Your Email - Job Portal"
	if purpose == "password-reset" {
		subject = "Password Reset OTP - Job Portal"
	}

	text := fmt.Sprintf("Your Job Portal verification code is: %s\n\nIt expires in 10 minutes.", code)
	html := fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Please use the code below to verify your email address:</p>
		<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
		<p>This code will expire in <strong>10 minutes</strong>. Do not share it with anyone.</p>
	`, code)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) SendApprovalEmail(toEmail, fullname string) error {
	subject := "Your Recruiter Account has been Approved!"
	text := fmt.Sprintf("Dear %s,\n\nYour recruiter account has been approved. Login at %s/login", fullname, s.frontendURL)
	html := fmt.Sprintf(`
		<h2>Account Approved!</h2>
		<p>Dear %s,</p>
		<p>Congratulations! Your recruiter account has been approved by our admin team.</p>
		<p><a href="%s/login">Login to Dashboard</a></p>
	`, fullname, s.frontendURL)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) SendRejectionEmail(toEmail, fullname, reason, blockDuration string) error {
	timeframe := reapplyTimeframe(blockDuration)

	subject := "Update on Your Recruiter Application"
	text := fmt.Sprintf("Dear %s,\n\nYour recruiter application was not approved.\nReason: %s\n%s", fullname, reason, timeframe)
	html := fmt.Sprintf(`
		<h2>Application Update</h2>
		<p>Dear %s,</p>
		<p>Unfortunately, your recruiter application was not approved.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>%s</p>
	`, fullname, reason, timeframe)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) sendEmail(toEmail, subject, text, html string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"

	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	// Text part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	// HTML part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	return smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes())
}
