package account

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/email"
	"github.com/dmitrymomot/authpost/pkg/email/templates"
)

const resetEmailTag = "password-reset"

// ResetMailer returns an auth.ResetHook that emails the reset link. The link
// is resetURL with the signed token added as the "token" query parameter.
func ResetMailer(sender email.EmailSender, resetURL string) (auth.ResetHook, error) {
	base, err := url.Parse(resetURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid reset password url %q", resetURL)
	}

	return func(ctx context.Context, n auth.ResetNotification) error {
		link := *base
		q := link.Query()
		q.Set("token", n.Token)
		link.RawQuery = q.Encode()

		html, err := templates.Render(ctx, templates.ResetPassword(templates.ResetPasswordData{
			Name:      n.Name,
			Link:      link.String(),
			ExpiresAt: n.ExpiresAt,
		}))
		if err != nil {
			return fmt.Errorf("render reset email: %w", err)
		}

		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   n.Email,
			Subject:  "Reset your password",
			BodyHTML: html,
			Tag:      resetEmailTag,
		})
	}, nil
}
