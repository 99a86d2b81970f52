package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"projecthub/internal/config"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	subject := "Welcome to ProjectHub"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Hi %s,</h2>
	<p>
		Your ProjectHub account is ready. Browse the open projects, express
		interest in the ones that match your skills, and your project manager
		will take it from there.
	</p>
	<p>
		<a href="https://%s/login" style="display: inline-block; padding: 10px 20px; background-color: #2563eb; color: #fff; text-decoration: none; border-radius: 6px;">
			Log in
		</a>
	</p>
</body>
</html>`, name, s.config.Domain)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ProjectHub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	subject := "Password Reset Request - ProjectHub"
	resetLink := fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Hi %s,</h2>
	<p>
		We received a request to reset your ProjectHub password. The link below
		is valid for one hour.
	</p>
	<p>
		<a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #2563eb; color: #fff; text-decoration: none; border-radius: 6px;">
			Reset password
		</a>
	</p>
	<p>If you did not request this, you can ignore this email.</p>
</body>
</html>`, name, resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ProjectHub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
