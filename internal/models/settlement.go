package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a direct payment between two participants to clear debt.
type Settlement struct {
	SettlementID    string          `json:"settlementID"` // Primary Key (UUID)
	GroupID         string          `json:"groupID"`      // FK -> Group.groupID (Not Null)
	FromParticipant string          `json:"fromParticipant"`
	ToParticipant   string          `json:"toParticipant"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	SettledAt       time.Time       `json:"settledAt"`
	AuditFields
}
