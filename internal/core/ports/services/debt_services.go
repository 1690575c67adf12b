package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// DebtReaderSvc defines read operations for debt accounts.
type DebtReaderSvc interface {
	// GetDebtor retrieves a specific debt account by its ID.
	GetDebtor(ctx context.Context, accountID string) (*domain.DebtAccount, error)

	// ListDebtors retrieves every debt account in creation order.
	ListDebtors(ctx context.Context) ([]domain.DebtAccount, error)

	// ListOverdue retrieves accounts that are overdue relative to now.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.DebtAccount, error)

	// RunningBalanceHistory returns the account's movements, most recent first, with display balances.
	RunningBalanceHistory(ctx context.Context, accountID string) ([]domain.RunningBalanceEntry, error)
}

// DebtWriterSvc defines the commands that mutate debt accounts.
type DebtWriterSvc interface {
	// CreateDebtor creates an account seeded with an "initial debt" give movement.
	CreateDebtor(ctx context.Context, req dto.CreateDebtorRequest) (*domain.DebtAccount, error)

	// RecordMovement appends a give or receive movement and updates the balance.
	RecordMovement(ctx context.Context, accountID string, req dto.RecordMovementRequest) (*domain.DebtMovement, error)

	// PayOff appends a receive movement for the full outstanding balance.
	PayOff(ctx context.Context, accountID string) (*domain.DebtMovement, error)

	// SetDueDate sets or clears (nil) the account's due date.
	SetDueDate(ctx context.Context, accountID string, dueDate *time.Time) (*domain.DebtAccount, error)

	// DeleteDebtor removes the account and all its movements.
	DeleteDebtor(ctx context.Context, accountID string) error
}

// DebtReminderSvc defines reminder composition and hand-off.
type DebtReminderSvc interface {
	// ComposeReminder builds the reminder inputs for an account with a positive balance.
	ComposeReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error)

	// SendReminder composes a reminder and hands it to the notification collaborator.
	SendReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error)

	// DispatchOverdueReminders sends one reminder per overdue account and returns how many were sent.
	DispatchOverdueReminders(ctx context.Context, now time.Time) (int, error)
}

// DebtSvcFacade combines all debt-related service interfaces.
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
	DebtReminderSvc
}
