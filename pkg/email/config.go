package email

// Config holds email delivery settings. Without both Postmark tokens the
// sender falls back to writing messages into DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@authpost.dev"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@authpost.dev"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// UsePostmark reports whether the config carries Postmark credentials.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}

// NewFromConfig returns the Postmark sender when credentials are present and
// a DevSender otherwise.
func NewFromConfig(cfg Config) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	return NewDevSender(cfg.DevDir), nil
}
