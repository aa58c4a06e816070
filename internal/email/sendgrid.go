package email

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender delivers messages through the SendGrid v3 API
type SendgridSender struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
	logger     *zap.Logger
}

// NewSendgridSender creates a SendGrid backed sender
func NewSendgridSender(key string, from mail.Address, subjPrefix string, logger *zap.Logger) *SendgridSender {
	return &SendgridSender{
		key:        key,
		host:       sendgridHost,
		from:       sgmail.NewEmail(from.Name, from.Address),
		subjPrefix: subjPrefix,
		logger:     logger,
	}
}

// WithHost points the sender at another API host
func (s *SendgridSender) WithHost(host string) *SendgridSender {
	s.host = host
	return s
}

// Send posts the message to SendGrid
func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", res.StatusCode, res.Body)
	}

	s.logger.Debug("email sent",
		zap.String("provider", ProviderSendgrid),
		zap.String("to", joinAddresses(msg.To)),
		zap.Int("status", res.StatusCode))
	return nil
}

func (s *SendgridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	if msg.TextContent != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	}
	if msg.HTMLContent != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}
	return m
}
