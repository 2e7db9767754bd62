package facades

import (
	"context"
	"fmt"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/wneessen/go-mail"
)

// MailFacade delivers password-reset links over SMTP.
type MailFacade struct {
	client      *mail.Client
	from        string
	fromName    string
	frontendURL string
}

// NewMailFacade creates a facade connected to the given SMTP endpoint.
// frontendURL is the base URL the reset link points at.
func NewMailFacade(host string, port int, username, password, from, fromName, frontendURL string) (*MailFacade, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, err
	}

	return &MailFacade{
		client:      client,
		from:        from,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

// SendPasswordReset emails the reset link for the given token to toEmail.
func (f *MailFacade) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", f.frontendURL, token)

	msg := mail.NewMsg()
	if err := msg.FromFormat(f.fromName, f.from); err != nil {
		return err
	}
	if err := msg.To(toEmail); err != nil {
		return err
	}
	msg.Subject("Password Reset Request")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetBody(resetLink))

	if err := f.client.DialAndSendWithContext(ctx, msg); err != nil {
		logger.Log.Errorw("failed to send password reset email",
			"to", toEmail,
			"error", err,
		)
		return err
	}

	logger.Log.Infow("password reset email sent", "to", toEmail)
	return nil
}

func passwordResetBody(resetLink string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #333; text-align: center;">Password Reset Request</h2>
			<div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
				<p>Hello,</p>
				<p>We received a password reset request for your account. Click the button below to reset your password:</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%[1]s" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">
						Reset My Password
					</a>
				</div>
				<p>Or copy this link into your browser:</p>
				<p style="background-color: #e9ecef; padding: 10px; border-radius: 3px; word-break: break-all;">%[1]s</p>
				<p><strong>Note:</strong> this link is valid for 24 hours.</p>
				<p>If you did not make this request, you can ignore this email.</p>
			</div>
		</div>`, resetLink)
}
