package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents one shared expense paid by a single participant.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	GroupID      string          `json:"groupID"`   // FK -> Group.groupID (Not Null)
	PaidBy       string          `json:"paidBy"`    // FK -> Participant.participantID (Not Null)
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	AuditFields
}

// ExpenseSplit is one line of an expense's division.
type ExpenseSplit struct {
	SplitID       string          `json:"splitID"`       // Primary Key (UUID)
	ExpenseID     string          `json:"expenseID"`     // FK -> Expense.expenseID (Not Null)
	ParticipantID string          `json:"participantID"` // FK -> Participant.participantID (Not Null)
	Amount        decimal.Decimal `json:"amount"`
}
