package mailer

// Config holds email delivery configuration. PostmarkServerToken and
// PostmarkAccountToken are optional: when either is absent, outbound mail is
// logged instead of delivered (development mode).
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@taexpense.app"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@taexpense.app"`
}

// Configured reports whether a real delivery transport is available.
func (c Config) Configured() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
