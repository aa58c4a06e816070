package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/formlytic/formlytic-api/internal/config"
	"go.uber.org/zap"
)

// Message is an outgoing e-mail
type Message struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

// HasRecipients reports whether the message has at least one recipient
func (m *Message) HasRecipients() bool {
	return len(m.To) > 0
}

// HasContent reports whether the message has a body
func (m *Message) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != ""
}

// Sender delivers e-mail messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const (
	ProviderLog      = "log"
	ProviderSendgrid = "sendgrid"
)

// NewSender returns the sender for the configured provider
func NewSender(cfg *config.EmailConfig, logger *zap.Logger) (Sender, error) {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	switch cfg.Provider {
	case ProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires an API key")
		}
		return NewSendgridSender(cfg.SendgridAPIKey, from, cfg.SubjectPrefix, logger), nil
	case ProviderLog, "":
		return NewLogSender(from, cfg.SubjectPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}
