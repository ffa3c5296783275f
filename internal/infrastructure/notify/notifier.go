package notify

import (
	"context"
	"fmt"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/infrastructure/smtp"
	"github.com/go-cms-api/internal/infrastructure/sns"
)

// Notifier delivers one-time codes over the channel the caller asked for.
type Notifier struct {
	mailer smtp.Mailer
	sms    sns.SMSSender
}

func New(mailer smtp.Mailer, sms sns.SMSSender) *Notifier {
	return &Notifier{mailer: mailer, sms: sms}
}

// SendCode dispatches the code message to identifier over channel.
// WhatsApp delivery reuses the SMS transport; the carrier-side routing is
// configured on the SNS topic.
func (n *Notifier) SendCode(ctx context.Context, identifier string, channel domain.Channel, code string) error {
	switch channel {
	case domain.ChannelEmail:
		subject := "Your verification code"
		body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
		return n.mailer.SendEmail(identifier, subject, body)
	case domain.ChannelSMS, domain.ChannelWhatsApp:
		if n.sms == nil {
			return fmt.Errorf("sms transport not configured")
		}
		msg := fmt.Sprintf("Your verification code is %s", code)
		return n.sms.SendSMS(ctx, identifier, msg)
	default:
		return fmt.Errorf("unsupported channel %q: %w", channel, domain.ErrBadRequest)
	}
}
