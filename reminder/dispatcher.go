package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jacentio/studiodesk/store"
)

// Dispatcher sends due reminders and marks them sent.
type Dispatcher struct {
	store   *store.Store
	senders map[store.ReminderType]Sender
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	skipped map[string]bool
}

// NewDispatcher creates a Dispatcher. A channel without a sender is skipped.
func NewDispatcher(s *store.Store, senders map[store.ReminderType]Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:   s,
		senders: senders,
		logger:  logger,
		now:     s.Config().Now,
	}
}

// Run delivers every reminder due now. A reminder is sent only when its
// channel's bookingReminder toggle is on; it is marked sent after a
// successful delivery. Delivery failures do not stop the run and are joined
// into the returned error. A reminder without a recipient stays unsent and is
// reported at Warn only on the first run that skips it. Runs never overlap.
func (d *Dispatcher) Run(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	skipped := make(map[string]bool)
	defer func() { d.skipped = skipped }()

	settings := d.store.NotificationSettings()
	due := d.store.DueReminders(d.now())

	var (
		sent int
		errs []error
	)
	for _, item := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if !channelEnabled(settings, item.Reminder.Type) {
			continue
		}
		sender, ok := d.senders[item.Reminder.Type]
		if !ok {
			continue
		}

		to, err := d.recipient(item)
		if err != nil {
			key := item.BookingID + "/" + item.Reminder.ID
			skipped[key] = true
			level := slog.LevelWarn
			if d.skipped[key] {
				level = slog.LevelDebug
			}
			d.logger.Log(ctx, level, "skipping reminder",
				"bookingID", item.BookingID,
				"reminderID", item.Reminder.ID,
				"error", err,
			)
			continue
		}

		if err := sender.Send(ctx, to, item.Reminder.Message); err != nil {
			d.logger.Error("failed to send reminder",
				"bookingID", item.BookingID,
				"reminderID", item.Reminder.ID,
				"channel", item.Reminder.Type,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("booking %s reminder %s: %w", item.BookingID, item.Reminder.ID, err))
			continue
		}

		if d.store.MarkReminderSent(item.BookingID, item.Reminder.ID) {
			sent++
		}
	}

	if sent > 0 {
		d.logger.Info("reminders sent", "count", sent)
	}
	return sent, errors.Join(errs...)
}

func (d *Dispatcher) recipient(item store.DueReminder) (string, error) {
	c, ok := d.store.Client(item.ClientID)
	if !ok {
		return "", fmt.Errorf("client %q: %w", item.ClientID, ErrNoRecipient)
	}
	var to string
	switch item.Reminder.Type {
	case store.ReminderSMS:
		to = c.Phone
	default:
		to = c.Email
	}
	if to == "" {
		return "", fmt.Errorf("client %q has no %s address: %w", c.ID, item.Reminder.Type, ErrNoRecipient)
	}
	return to, nil
}

func channelEnabled(n store.NotificationSettings, t store.ReminderType) bool {
	switch t {
	case store.ReminderSMS:
		return n.SMSNotifications.BookingReminder
	case store.ReminderEmail:
		return n.EmailNotifications.BookingReminder
	}
	return false
}
