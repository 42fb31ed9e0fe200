package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents one shared expense paid by a single participant on
// behalf of the group.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`    // Primary Key (UUID)
	GroupID      string          `json:"groupID"`      // FK -> Group.groupID (Not Null)
	PaidBy       string          `json:"paidBy"`       // FK -> Participant.participantID (Not Null)
	Amount       decimal.Decimal `json:"amount"`       // Positive value; precise decimal type
	CurrencyCode string          `json:"currencyCode"` // 3-letter code (Not Null)
	Description  string          `json:"description"`  // Nullable
	ExpenseDate  time.Time       `json:"expenseDate"`  // Date the expense occurred
	Splits       []ExpenseSplit  `json:"splits"`       // Division lines, loaded with the expense
	AuditFields
}

// ExpenseSplit is one line of an expense's division, attributing part of the
// amount to one participant. The sum of a given expense's split amounts is
// expected to equal the expense amount; this is enforced at write time
// upstream, never re-checked during balance computation.
type ExpenseSplit struct {
	SplitID       string          `json:"splitID"`       // Primary Key (UUID)
	ExpenseID     string          `json:"expenseID"`     // FK -> Expense.expenseID (Not Null)
	ParticipantID string          `json:"participantID"` // FK -> Participant.participantID (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // This participant's share
}
