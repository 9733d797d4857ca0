// Package email sends transactional email.
//
// EmailSender is implemented by a Postmark client for production and by
// DevSender, which writes every message to a local directory as an HTML file
// plus JSON metadata. NewFromConfig picks one based on whether Postmark tokens
// are configured.
//
//	sender, err := email.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	html, err := templates.Render(ctx, templates.ResetPassword(data))
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Reset your password",
//		BodyHTML: html,
//		Tag:      "password-reset",
//	})
//
// Parameter problems wrap ErrInvalidParams, bad configuration wraps
// ErrInvalidConfig and delivery failures wrap ErrFailedToSendEmail.
package email
