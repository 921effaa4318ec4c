package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Notifier sends the one-shot affiliate-link email after a subscription is
// registered. Delivery is best effort; callers log failures and move on.
type Notifier interface {
	SendAffiliateLink(to, alias, affiliateLink string) error
}

// SMTPNotifier delivers over a plain SMTP account.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(host string, port int, user, pass, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (n *SMTPNotifier) SendAffiliateLink(to, alias, affiliateLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Tu enlace de afiliado - Sistema Solidario")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>¡Bienvenido al Sistema Solidario!</p>"+
			"<p>Tu alias es <b>%s</b>.</p>"+
			"<p>Comparte tu enlace de afiliado: <a href=%q>%s</a></p>",
		alias, affiliateLink, affiliateLink,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send affiliate link email to %s: %w", to, err)
	}
	return nil
}
