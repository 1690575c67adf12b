package domain

import "time"

// TransactionKind indicates whether a financial transaction is income or expense.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// PaymentStatus indicates whether a transaction has been settled.
type PaymentStatus string

const (
	Settled PaymentStatus = "settled"
	Owed    PaymentStatus = "owed"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	return s == Settled || s == Owed
}

// FinancialTransaction is one immutable income/expense event in the journal.
type FinancialTransaction struct {
	TransactionID string          `json:"id"`
	Kind          TransactionKind `json:"kind"`
	GrossAmount   int64           `json:"grossAmount"`
	CostAmount    *int64          `json:"costAmount,omitempty"` // Only meaningful for income
	Note          string          `json:"note"`
	Category      string          `json:"category,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Cost returns the cost amount or zero when none was recorded.
func (t FinancialTransaction) Cost() int64 {
	if t.CostAmount == nil {
		return 0
	}
	return *t.CostAmount
}

// LineProfit returns gross minus cost for income transactions. The second
// return value is false for expenses, where profit is undefined.
func (t FinancialTransaction) LineProfit() (int64, bool) {
	if t.Kind != Income {
		return 0, false
	}
	return t.GrossAmount - t.Cost(), true
}

// Receipt is a point-of-sale income record kept in its own log.
type Receipt struct {
	ReceiptID  string    `json:"id"`
	Total      int64     `json:"total"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CategoryTemplate holds default amounts used to pre-fill a new transaction.
type CategoryTemplate struct {
	CategoryID  string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	GrossAmount int64  `json:"grossAmount" mapstructure:"gross_amount"`
	CostAmount  int64  `json:"costAmount" mapstructure:"cost_amount"`
}

// TransactionPrefill is the result of applying a category template.
type TransactionPrefill struct {
	Category    string `json:"category"`
	GrossAmount int64  `json:"grossAmount"`
	CostAmount  int64  `json:"costAmount"`
	Matched     bool   `json:"matched"`
}
