package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReminderMessageType identifies reminder payloads on the exchange.
const ReminderMessageType = "debt.reminder"

// ReminderMessage is the payload handed to the notification service. It carries
// the template inputs only; the consumer renders and delivers the text.
type ReminderMessage struct {
	Type          string     `json:"type"`
	AccountID     string     `json:"accountId"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	Amount        int64      `json:"amount"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Overdue       bool       `json:"overdue"`
	ComposedAt    time.Time  `json:"composedAt"`
}

// NewReminderMessage builds the wire message for a composed reminder.
func NewReminderMessage(r domain.Reminder) *ReminderMessage {
	return &ReminderMessage{
		Type:          ReminderMessageType,
		AccountID:     r.AccountID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		Overdue:       r.Overdue,
		ComposedAt:    r.ComposedAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReminderMessageFromJSON decodes a message produced by ToJSON.
func ReminderMessageFromJSON(data []byte) (*ReminderMessage, error) {
	var msg ReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
