// Package reminder plans and delivers booking reminders.
package reminder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrNoRecipient is returned when a reminder's client has no address for the
// reminder's channel.
var ErrNoRecipient = errors.New("studiodesk: reminder has no recipient")

// Sender delivers a message on one channel.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// MessageCreator is the subset of the Twilio API used to send SMS.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender sends reminders as SMS through Twilio.
type SMSSender struct {
	api    MessageCreator
	from   string
	logger *slog.Logger
}

// NewSMSSender creates an SMSSender with a Twilio REST client.
func NewSMSSender(accountSID, authToken, from string, logger *slog.Logger) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewSMSSenderWithAPI(client.Api, from, logger)
}

// NewSMSSenderWithAPI creates an SMSSender over an existing message API.
func NewSMSSenderWithAPI(api MessageCreator, from string, logger *slog.Logger) *SMSSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMSSender{api: api, from: from, logger: logger}
}

// Send implements Sender. The Twilio client does not take a context, so ctx
// is only checked before the call.
func (s *SMSSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return ErrNoRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp != nil && resp.Sid != nil {
		s.logger.Debug("sms sent", "to", to, "sid", *resp.Sid)
	}
	return nil
}

// LogSender records messages in the log instead of delivering them. It backs
// the email channel until a mail transport is configured.
type LogSender struct {
	Channel string
	Logger  *slog.Logger
}

// Send implements Sender.
func (l LogSender) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "reminder delivered to log",
		"channel", l.Channel,
		"to", to,
		"body", body,
	)
	return nil
}
