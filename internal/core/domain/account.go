package domain

import "time"

// MovementKind indicates the direction of a debt movement.
type MovementKind string

const (
	// Give means the shop extends credit: the customer's debt increases.
	Give MovementKind = "give"
	// Receive means the customer pays: the customer's debt decreases.
	Receive MovementKind = "receive"
)

// IsValid reports whether k is a known movement kind.
func (k MovementKind) IsValid() bool {
	return k == Give || k == Receive
}

// AccountStatus is the derived payoff state of a debt account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusOverdue AccountStatus = "overdue"
	StatusPaidOff AccountStatus = "paid_off"
)

// DebtMovement is one ledger line within a DebtAccount. Movements are never
// mutated; corrections are recorded as new offsetting movements.
type DebtMovement struct {
	MovementID    string       `json:"id"`
	DebtAccountID string       `json:"debtAccountId"`
	Kind          MovementKind `json:"kind"`
	Amount        int64        `json:"amount"` // Always positive; sign comes from Kind
	Note          string       `json:"note"`
	OccurredAt    time.Time    `json:"occurredAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// SignedAmount returns +Amount for give movements and -Amount for receive movements.
func (m DebtMovement) SignedAmount() int64 {
	if m.Kind == Receive {
		return -m.Amount
	}
	return m.Amount
}

// DebtAccount represents one customer's outstanding balance with the shop.
// TotalDebt always equals the signed fold of Movements.
type DebtAccount struct {
	AccountID     string         `json:"id"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone,omitempty"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	TotalDebt     int64          `json:"totalDebt"`
	Movements     []DebtMovement `json:"movements"` // Insertion order
	AuditFields
}

// IsOverdue reports whether the account has a due date before now while
// still carrying a positive balance.
func (a *DebtAccount) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && a.DueDate.Before(now) && a.TotalDebt > 0
}

// Status derives the account's position in the active/overdue/paid-off state machine.
func (a *DebtAccount) Status(now time.Time) AccountStatus {
	switch {
	case a.TotalDebt <= 0:
		return StatusPaidOff
	case a.IsOverdue(now):
		return StatusOverdue
	default:
		return StatusActive
	}
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (a DebtAccount) Clone() DebtAccount {
	clone := a
	if a.DueDate != nil {
		due := *a.DueDate
		clone.DueDate = &due
	}
	clone.Movements = make([]DebtMovement, len(a.Movements))
	copy(clone.Movements, a.Movements)
	return clone
}

// RunningBalanceEntry pairs a movement with the balance as of that movement, inclusive.
type RunningBalanceEntry struct {
	Movement DebtMovement `json:"movement"`
	Balance  int64        `json:"balance"` // Clamped to zero for display
}

// Reminder carries the inputs a notification collaborator needs to compose a payment reminder.
type Reminder struct {
	AccountID     string     `json:"accountId"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	Amount        int64      `json:"amount"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Overdue       bool       `json:"overdue"`
	ComposedAt    time.Time  `json:"composedAt"`
}
