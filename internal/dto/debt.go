package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// CreateDebtorRequest defines the data needed to open a debt account.
type CreateDebtorRequest struct {
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerPhone string     `json:"customerPhone"`
	InitialDebt   int64      `json:"initialDebt" binding:"required,gt=0"`
	DueDate       *time.Time `json:"dueDate"`
}

// RecordMovementRequest defines a give/receive movement on an existing account.
type RecordMovementRequest struct {
	Kind       domain.MovementKind `json:"kind" binding:"required,movementkind"`
	Amount     int64               `json:"amount" binding:"required,gt=0"`
	Note       string              `json:"note" binding:"required"`
	OccurredAt *time.Time          `json:"occurredAt"` // Defaults to now
}

// SetDueDateRequest sets or clears (null) an account's due date.
type SetDueDateRequest struct {
	DueDate *time.Time `json:"dueDate"`
}

// DebtMovementResponse defines the data returned for a movement.
type DebtMovementResponse struct {
	MovementID    string              `json:"id"`
	DebtAccountID string              `json:"debtAccountId"`
	Kind          domain.MovementKind `json:"kind"`
	Amount        int64               `json:"amount"`
	Note          string              `json:"note"`
	OccurredAt    time.Time           `json:"occurredAt"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// DebtAccountResponse defines the data returned for a debt account.
type DebtAccountResponse struct {
	AccountID     string                 `json:"id"`
	CustomerName  string                 `json:"customerName"`
	CustomerPhone string                 `json:"customerPhone,omitempty"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	TotalDebt     int64                  `json:"totalDebt"`
	Status        domain.AccountStatus   `json:"status"`
	IsOverdue     bool                   `json:"isOverdue"`
	Movements     []DebtMovementResponse `json:"movements"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// RunningBalanceResponse is one line of an account's balance history.
type RunningBalanceResponse struct {
	Movement DebtMovementResponse `json:"movement"`
	Balance  int64                `json:"balance"`
}

// ToDebtMovementResponse converts a domain.DebtMovement to its DTO.
func ToDebtMovementResponse(m *domain.DebtMovement) DebtMovementResponse {
	return DebtMovementResponse{
		MovementID:    m.MovementID,
		DebtAccountID: m.DebtAccountID,
		Kind:          m.Kind,
		Amount:        m.Amount,
		Note:          m.Note,
		OccurredAt:    m.OccurredAt,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDebtAccountResponse converts a domain.DebtAccount to its DTO, deriving status against now.
func ToDebtAccountResponse(acc *domain.DebtAccount, now time.Time) DebtAccountResponse {
	movements := make([]DebtMovementResponse, len(acc.Movements))
	for i := range acc.Movements {
		movements[i] = ToDebtMovementResponse(&acc.Movements[i])
	}
	return DebtAccountResponse{
		AccountID:     acc.AccountID,
		CustomerName:  acc.CustomerName,
		CustomerPhone: acc.CustomerPhone,
		DueDate:       acc.DueDate,
		TotalDebt:     acc.TotalDebt,
		Status:        acc.Status(now),
		IsOverdue:     acc.IsOverdue(now),
		Movements:     movements,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// ToDebtAccountResponses converts a slice of accounts.
func ToDebtAccountResponses(accounts []domain.DebtAccount, now time.Time) []DebtAccountResponse {
	responses := make([]DebtAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToDebtAccountResponse(&accounts[i], now)
	}
	return responses
}

// ToRunningBalanceResponses converts a balance history.
func ToRunningBalanceResponses(history []domain.RunningBalanceEntry) []RunningBalanceResponse {
	responses := make([]RunningBalanceResponse, len(history))
	for i := range history {
		responses[i] = RunningBalanceResponse{
			Movement: ToDebtMovementResponse(&history[i].Movement),
			Balance:  history[i].Balance,
		}
	}
	return responses
}
