package email

import (
	"context"
	"net/mail"

	"go.uber.org/zap"
)

// LogSender writes messages to the application log instead of sending them
type LogSender struct {
	from       mail.Address
	subjPrefix string
	logger     *zap.Logger
}

// NewLogSender creates a sender for local development
func NewLogSender(from mail.Address, subjPrefix string, logger *zap.Logger) *LogSender {
	return &LogSender{from: from, subjPrefix: subjPrefix, logger: logger}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}
	s.logger.Info("email",
		zap.String("from", s.from.String()),
		zap.String("to", joinAddresses(msg.To)),
		zap.String("subject", s.subjPrefix+msg.Subject),
		zap.String("body", msg.TextContent))
	return nil
}
