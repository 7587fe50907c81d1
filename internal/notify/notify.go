// Package notify turns a batch of quote rows into the summary email.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"stockmail/internal/dataset"
	"stockmail/internal/logger"
)

// Header prefixes every rendered table.
const Header = "Stock Data:"

// Sender delivers one text message.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

type Notifier struct {
	sender  Sender
	subject string
	log     *slog.Logger
}

func New(sender Sender, subject string, l *slog.Logger) *Notifier {
	if subject == "" {
		subject = "Stock Data"
	}
	return &Notifier{sender: sender, subject: subject, log: logger.OrDiscard(l)}
}

// Body renders rows as the email body.
func Body(rows dataset.Dataset) string {
	return Header + "\n\n" + rows.String()
}

// Notify sends rows as a text table. Delivery failures, including panics in
// the transport, are logged and never reach the caller.
func (n *Notifier) Notify(ctx context.Context, rows dataset.Dataset) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("unexpected error while sending email", "err", fmt.Sprint(r))
		}
	}()
	if n.sender == nil {
		n.log.Error("email not sent", "err", "no sender configured")
		return
	}
	if err := n.sender.Send(ctx, n.subject, Body(rows)); err != nil {
		n.log.Error("an error occurred while sending the email", "err", err)
		return
	}
	n.log.Info("email sent", "rows", rows.Len())
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) Send(_ context.Context, subject, body string) error {
	logger.OrDiscard(s.Log).Info("dry run: email not sent", "subject", subject, "body", body)
	return nil
}
