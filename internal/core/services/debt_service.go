package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/ports"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

const (
	noteInitialDebt = "initial debt"
	noteFullPayoff  = "full payoff"
)

// debtService implements the DebtSvcFacade interface.
type debtService struct {
	BaseService
	debtRepo  portsrepo.DebtAccountRepositoryFacade
	publisher ports.ReminderPublisher
}

// DebtServiceOption is a functional option for configuring the debt service
type DebtServiceOption func(*debtService)

// WithDebtClock overrides the clock used for creation and movement timestamps.
func WithDebtClock(now Clock) DebtServiceOption {
	return func(s *debtService) {
		s.Now = now
	}
}

// WithReminderPublisher sets the notification collaborator used by SendReminder.
func WithReminderPublisher(publisher ports.ReminderPublisher) DebtServiceOption {
	return func(s *debtService) {
		s.publisher = publisher
	}
}

// NewDebtService creates a new debt service with the provided options
func NewDebtService(repo portsrepo.DebtAccountRepositoryFacade, options ...DebtServiceOption) portssvc.DebtSvcFacade {
	svc := &debtService{debtRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure debtService implements the DebtSvcFacade interface
var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) CreateDebtor(ctx context.Context, req dto.CreateDebtorRequest) (*domain.DebtAccount, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if req.InitialDebt <= 0 {
		return nil, fmt.Errorf("%w: initial debt must be positive", apperrors.ErrValidation)
	}

	now := s.CurrentTime()
	accountID := uuid.NewString()
	account := domain.DebtAccount{
		AccountID:     accountID,
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		DueDate:       req.DueDate,
		Movements: []domain.DebtMovement{{
			MovementID:    uuid.NewString(),
			DebtAccountID: accountID,
			Kind:          domain.Give,
			Amount:        req.InitialDebt,
			Note:          noteInitialDebt,
			OccurredAt:    now,
			CreatedAt:     now,
		}},
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	account.TotalDebt = accounting.FoldBalance(account.Movements)

	if err := s.debtRepo.SaveDebtAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save debt account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save debt account: %w", err)
	}

	s.LogInfo(ctx, "Debt account created", slog.String("account_id", accountID), slog.Int64("initial_debt", req.InitialDebt))
	return &account, nil
}

func (s *debtService) RecordMovement(ctx context.Context, accountID string, req dto.RecordMovementRequest) (*domain.DebtMovement, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, fmt.Errorf("%w: note is required", apperrors.ErrValidation)
	}

	now := s.CurrentTime()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	return s.appendMovement(ctx, accountID, func(account *domain.DebtAccount) (*domain.DebtMovement, error) {
		return &domain.DebtMovement{
			MovementID:    uuid.NewString(),
			DebtAccountID: account.AccountID,
			Kind:          req.Kind,
			Amount:        req.Amount,
			Note:          note,
			OccurredAt:    occurredAt,
			CreatedAt:     now,
		}, nil
	})
}

func (s *debtService) PayOff(ctx context.Context, accountID string) (*domain.DebtMovement, error) {
	now := s.CurrentTime()
	return s.appendMovement(ctx, accountID, func(account *domain.DebtAccount) (*domain.DebtMovement, error) {
		if account.TotalDebt <= 0 {
			return nil, fmt.Errorf("%w: account %s has no outstanding debt", apperrors.ErrInvalidState, account.AccountID)
		}
		return &domain.DebtMovement{
			MovementID:    uuid.NewString(),
			DebtAccountID: account.AccountID,
			Kind:          domain.Receive,
			Amount:        account.TotalDebt,
			Note:          noteFullPayoff,
			OccurredAt:    now,
			CreatedAt:     now,
		}, nil
	})
}

// appendMovement runs build against a private copy of the account under its
// mutation lock, then saves the copy with the new movement and refolded balance.
func (s *debtService) appendMovement(ctx context.Context, accountID string, build func(*domain.DebtAccount) (*domain.DebtMovement, error)) (*domain.DebtMovement, error) {
	unlock := s.debtRepo.LockAccount(accountID)
	defer unlock()

	account, err := s.debtRepo.FindDebtAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load debt account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	movement, err := build(account)
	if err != nil {
		return nil, err
	}

	account.Movements = append(account.Movements, *movement)
	account.TotalDebt = accounting.FoldBalance(account.Movements)
	account.UpdatedAt = movement.CreatedAt

	if err := s.debtRepo.SaveDebtAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to save debt movement",
			slog.String("account_id", accountID),
			slog.String("movement_id", movement.MovementID))
		return nil, fmt.Errorf("failed to save debt movement: %w", err)
	}

	s.LogInfo(ctx, "Debt movement recorded",
		slog.String("account_id", accountID),
		slog.String("kind", string(movement.Kind)),
		slog.Int64("amount", movement.Amount),
		slog.Int64("total_debt", account.TotalDebt))
	return movement, nil
}

func (s *debtService) SetDueDate(ctx context.Context, accountID string, dueDate *time.Time) (*domain.DebtAccount, error) {
	unlock := s.debtRepo.LockAccount(accountID)
	defer unlock()

	account, err := s.debtRepo.FindDebtAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.DueDate = dueDate
	account.UpdatedAt = s.CurrentTime()
	if err := s.debtRepo.SaveDebtAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to save due date", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save due date: %w", err)
	}
	return account, nil
}

func (s *debtService) DeleteDebtor(ctx context.Context, accountID string) error {
	unlock := s.debtRepo.LockAccount(accountID)
	defer unlock()

	if err := s.debtRepo.DeleteDebtAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete debt account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Debt account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *debtService) GetDebtor(ctx context.Context, accountID string) (*domain.DebtAccount, error) {
	return s.debtRepo.FindDebtAccountByID(ctx, accountID)
}

func (s *debtService) ListDebtors(ctx context.Context) ([]domain.DebtAccount, error) {
	accounts, err := s.debtRepo.ListDebtAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debt accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *debtService) ListOverdue(ctx context.Context, now time.Time) ([]domain.DebtAccount, error) {
	accounts, err := s.ListDebtors(ctx)
	if err != nil {
		return nil, err
	}
	overdue := make([]domain.DebtAccount, 0, len(accounts))
	for i := range accounts {
		if accounts[i].IsOverdue(now) {
			overdue = append(overdue, accounts[i])
		}
	}
	return overdue, nil
}

func (s *debtService) RunningBalanceHistory(ctx context.Context, accountID string) ([]domain.RunningBalanceEntry, error) {
	account, err := s.debtRepo.FindDebtAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return accounting.RunningBalanceHistory(*account), nil
}

func (s *debtService) ComposeReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error) {
	account, err := s.debtRepo.FindDebtAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return composeReminder(account, now)
}

func composeReminder(account *domain.DebtAccount, now time.Time) (*domain.Reminder, error) {
	if account.TotalDebt <= 0 {
		return nil, fmt.Errorf("%w: account %s has no outstanding debt", apperrors.ErrInvalidState, account.AccountID)
	}
	return &domain.Reminder{
		AccountID:     account.AccountID,
		CustomerName:  account.CustomerName,
		CustomerPhone: account.CustomerPhone,
		Amount:        account.TotalDebt,
		DueDate:       account.DueDate,
		Overdue:       account.IsOverdue(now),
		ComposedAt:    now,
	}, nil
}

func (s *debtService) SendReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error) {
	if s.publisher == nil {
		return nil, fmt.Errorf("%w: no reminder channel configured", apperrors.ErrInvalidState)
	}
	reminder, err := s.ComposeReminder(ctx, accountID, now)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.PublishReminder(ctx, *reminder); err != nil {
		s.LogError(ctx, err, "Failed to publish reminder", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to publish reminder: %w", err)
	}
	s.LogInfo(ctx, "Reminder sent", slog.String("account_id", accountID), slog.Int64("amount", reminder.Amount))
	return reminder, nil
}

// DispatchOverdueReminders publishes a reminder for every overdue account.
// A failed publish does not stop the sweep; failures are joined into the returned error.
func (s *debtService) DispatchOverdueReminders(ctx context.Context, now time.Time) (int, error) {
	if s.publisher == nil {
		return 0, fmt.Errorf("%w: no reminder channel configured", apperrors.ErrInvalidState)
	}
	overdue, err := s.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	var errs []error
	for i := range overdue {
		reminder, err := composeReminder(&overdue[i], now)
		if err != nil {
			continue
		}
		if err := s.publisher.PublishReminder(ctx, *reminder); err != nil {
			s.LogError(ctx, err, "Failed to publish overdue reminder", slog.String("account_id", reminder.AccountID))
			errs = append(errs, fmt.Errorf("account %s: %w", reminder.AccountID, err))
			continue
		}
		sent++
	}

	s.LogInfo(ctx, "Overdue reminders dispatched", slog.Int("overdue", len(overdue)), slog.Int("sent", sent))
	return sent, errors.Join(errs...)
}
