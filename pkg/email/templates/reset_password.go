package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// ResetPasswordData is the content of the password reset email.
type ResetPasswordData struct {
	Name      string
	Link      string
	ExpiresAt time.Time
}

// ResetPassword renders the reset email. Name and link are HTML escaped and
// the link is passed through templ's URL sanitizer.
func ResetPassword(d ResetPasswordData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name := d.Name
		if name == "" {
			name = "there"
		}
		link := templ.EscapeString(string(templ.URL(d.Link)))

		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Reset your password</title></head>
<body style="font-family:Arial,sans-serif;color:#1f2937;">
<p>Hi %s,</p>
<p>We received a request to reset your password. The link below is valid until %s.</p>
<p><a href="%s" style="display:inline-block;padding:10px 18px;background:#2563eb;color:#ffffff;text-decoration:none;border-radius:4px;">Reset password</a></p>
<p style="color:#6b7280;">If you did not ask for a reset you can ignore this email.</p>
</body>
</html>
`,
			templ.EscapeString(name),
			templ.EscapeString(d.ExpiresAt.UTC().Format("15:04 MST, 2 Jan 2006")),
			link,
		)
		return err
	})
}
