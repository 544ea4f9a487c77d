package email

// Config holds email service configuration. The Postmark tokens are
// optional so development environments can run with the dev sender;
// SenderEmail and SupportEmail establish sender identity and reply-to
// behavior for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	OpsEmail             string `env:"OPS_EMAIL"` // OpsEmail receives tenant status change notices; defaults to SupportEmail.
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
