package ports

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReminderPublisher hands a composed reminder to the external notification channel.
// Delivery itself is the collaborator's concern.
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, reminder domain.Reminder) error
}
