package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/elzapay/elza/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

// New returns an SMTP-backed provider, or a no-op one when email is
// disabled in the configuration.
func New(p Params) Provider {
	log := p.Log.Named("email")
	if !p.Config.Email.Enabled {
		return &noopProvider{log: log}
	}
	return &smtpProvider{cfg: p.Config.Email, log: log}
}

type smtpProvider struct {
	cfg config.EmailConfig
	log *zap.Logger
}

func (s *smtpProvider) SendReceipt(ctx context.Context, msg ReceiptMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := buildReceiptBody(msg)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{msg.To}, body); err != nil {
		return err
	}

	s.log.Info("receipt email sent", zap.String("to", msg.To))
	return nil
}

func buildReceiptBody(msg ReceiptMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: Your receipt from %s\r\n", msg.MerchantName)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Thank you for your purchase from %s.\r\n\r\n", msg.MerchantName)
	for i, name := range msg.ProductNames {
		fmt.Fprintf(&b, "  %s", name)
		if i < len(msg.ReceiptIDs) {
			fmt.Fprintf(&b, " (receipt %s)", msg.ReceiptIDs[i])
		}
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "\r\nTotal: %s %s\r\n", msg.Total, msg.Currency)
	return []byte(b.String())
}

type noopProvider struct {
	log *zap.Logger
}

func (n *noopProvider) SendReceipt(ctx context.Context, msg ReceiptMessage) error {
	n.log.Debug("email disabled, receipt not sent", zap.String("to", msg.To))
	return nil
}
