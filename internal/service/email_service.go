package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v3"

	"grievance-portal/internal/config"
)

// EmailService delivers portal notifications. Every send is best-effort:
// callers fire it from a goroutine and failures are logged, never returned
// to the request that triggered them.
type EmailService interface {
	SendGrievanceSubmitted(ctx context.Context, toEmail, grievanceID, title string) error
	SendStatusUpdate(ctx context.Context, toEmail, grievanceID, title, statusLabel string) error
}

type emailService struct {
	client *resend.Client
	cfg    *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &emailService{
		client: client,
		cfg:    cfg,
	}
}

func (s *emailService) SendGrievanceSubmitted(ctx context.Context, toEmail, grievanceID, title string) error {
	subject := fmt.Sprintf("Grievance Submitted Successfully - %s", title)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
		<h2 style="color: #004F9F;">Grievance Submitted Successfully</h2>
		<p>Dear Student,</p>
		<p>Your grievance has been submitted successfully.</p>
		<p><strong>Grievance ID:</strong> #%s<br>
		<strong>Title:</strong> %s<br>
		<strong>Status:</strong> Pending</p>
		<p>Your grievance will be reviewed by the administration shortly. You will receive notifications as its status changes.</p>
		<div style="margin-top: 30px; text-align: center;">
			<a href="%s" style="background-color: #004F9F; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-weight: bold;">View Grievance</a>
		</div>
		<p style="margin-top: 30px; font-size: 0.9em; color: #666; border-top: 1px solid #ddd; padding-top: 15px;">
			This is an automated message from the Student Grievance Portal. Please do not reply to this email.
		</p>
	</div>
</body>
</html>`, grievanceID, title, s.cfg.PortalURL)

	return s.send(ctx, toEmail, subject, html)
}

func (s *emailService) SendStatusUpdate(ctx context.Context, toEmail, grievanceID, title, statusLabel string) error {
	subject := fmt.Sprintf("Grievance Status Update - %s", title)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
		<h2 style="color: #004F9F;">Grievance Status Update</h2>
		<p>Dear Student,</p>
		<p>The status of your grievance <strong>#%s</strong> with title "<strong>%s</strong>" has been updated to: <strong style="color: #E31837;">%s</strong>.</p>
		<p>You can log in to the Student Grievance Portal to view more details and track the progress of your grievance.</p>
		<div style="margin-top: 30px; text-align: center;">
			<a href="%s" style="background-color: #004F9F; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-weight: bold;">View Grievance</a>
		</div>
		<p style="margin-top: 30px; font-size: 0.9em; color: #666; border-top: 1px solid #ddd; padding-top: 15px;">
			This is an automated message from the Student Grievance Portal. Please do not reply to this email.
		</p>
	</div>
</body>
</html>`, grievanceID, title, statusLabel, s.cfg.PortalURL)

	return s.send(ctx, toEmail, subject, html)
}

func (s *emailService) send(ctx context.Context, toEmail, subject, html string) error {
	// No API key configured: print the mail instead of sending, so local
	// development works without a Resend account.
	if s.client == nil {
		log.Printf("----- EMAIL -----\nTo: %s\nSubject: %s\n----- END EMAIL -----", toEmail, subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Student Grievance Portal <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
