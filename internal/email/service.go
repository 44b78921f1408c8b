package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Service sends the product's outbound email over SMTP.
type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	frontendURL  string
}

func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, fromEmail, frontendURL string) *Service {
	return &Service{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    fromEmail,
		frontendURL:  frontendURL,
	}
}

// PlatformLink is one review destination offered to the contact.
type PlatformLink struct {
	Name string
	URL  string
}

// ReviewRequestData feeds the review-request template.
type ReviewRequestData struct {
	ContactName   string
	BusinessName  string
	PlatformLinks []PlatformLink
}

// SendPasswordResetEmail sends a password reset link to the user.
// Designed to be called in a goroutine.
func (s *Service) SendPasswordResetEmail(ctx context.Context, toEmail, token string) error {
	logger := logging.GetLoggerFromContext(ctx)

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	subject := "Reset your password"
	body, err := renderPasswordResetEmail(resetLink)
	if err != nil {
		logger.Error("failed to render password reset email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.Send(toEmail, subject, body); err != nil {
		logger.Error("failed to send password reset email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("password reset email sent", "email", toEmail)
	return nil
}

// Send delivers a single HTML email over SMTP.
func (s *Service) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

// RenderReviewRequest produces the subject and HTML body of a review
// request email for the given contact.
func RenderReviewRequest(data ReviewRequestData) (subject, body string, err error) {
	subject = fmt.Sprintf("We'd love your feedback, %s!", data.ContactName)

	t, err := template.New("reviewRequest").Parse(reviewRequestTemplate)
	if err != nil {
		return "", "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("execute template: %w", err)
	}

	return subject, buf.String(), nil
}

// RenderTestEmail produces the subject and HTML body of the
// configuration test email.
func RenderTestEmail() (subject, body string) {
	return "Test Email from ReviewCraft", testEmailBody
}

func renderPasswordResetEmail(resetLink string) (string, error) {
	t, err := template.New("passwordReset").Parse(passwordResetTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		ResetLink string
	}{
		ResetLink: resetLink,
	}

	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
