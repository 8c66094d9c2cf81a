package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client      *mailersend.Mailersend
	from        mailersend.From
	frontendURL string
	enabled     bool
}

func NewMailerSend(apiKey, fromName, fromEmail, frontendURL string) *MailerSendClient {
	m := &MailerSendClient{
		enabled:     apiKey != "" && fromEmail != "",
		frontendURL: frontendURL,
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendOTPEmail(toEmail, code, purpose string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Verify Your Email - Job Portal"
	if purpose == "password-reset" {
		subject = "Password Reset OTP - Job Portal"
	}

	html := fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Please use the code below to verify your email address:</p>
		<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
		<p>This code will expire in <strong>10 minutes</strong>. Do not share it with anyone.</p>
		<p>If you didn't request this verification, please ignore this email.</p>
	`, code)

	text := fmt.Sprintf("Your Job Portal verification code is: %s\n\nIt expires in 10 minutes.", code)

	return m.sendEmail(toEmail, "", subject, text, html)
}

func (m *MailerSendClient) SendApprovalEmail(toEmail, fullname string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your Recruiter Account has been Approved!"
	html := fmt.Sprintf(`
		<h2>Account Approved!</h2>
		<p>Dear %s,</p>
		<p>Congratulations! Your recruiter account has been approved by our admin team.</p>
		<p>You can now post job openings, manage applications and connect with candidates.</p>
		<p><a href="%s/login">Login to Dashboard</a></p>
	`, fullname, m.frontendURL)

	text := fmt.Sprintf("Dear %s,\n\nYour recruiter account has been approved. Login at %s/login", fullname, m.frontendURL)

	return m.sendEmail(toEmail, fullname, subject, text, html)
}

func (m *MailerSendClient) SendRejectionEmail(toEmail, fullname, reason, blockDuration string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	timeframe := reapplyTimeframe(blockDuration)

	subject := "Update on Your Recruiter Application"
	html := fmt.Sprintf(`
		<h2>Application Update</h2>
		<p>Dear %s,</p>
		<p>Unfortunately, your recruiter application was not approved.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>%s</p>
	`, fullname, reason, timeframe)

	text := fmt.Sprintf("Dear %s,\n\nYour recruiter application was not approved.\nReason: %s\n%s", fullname, reason, timeframe)

	return m.sendEmail(toEmail, fullname, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
