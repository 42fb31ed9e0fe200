package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a direct payment between two participants, outside the split
// mechanism, used to clear existing debt.
type Settlement struct {
	SettlementID    string          `json:"settlementID"`    // Primary Key (UUID)
	GroupID         string          `json:"groupID"`         // FK -> Group.groupID (Not Null)
	FromParticipant string          `json:"fromParticipant"` // Payer, FK -> Participant.participantID
	ToParticipant   string          `json:"toParticipant"`   // Receiver, FK -> Participant.participantID
	Amount          decimal.Decimal `json:"amount"`          // Positive value
	CurrencyCode    string          `json:"currencyCode"`    // 3-letter code (Not Null)
	SettledAt       time.Time       `json:"settledAt"`
	AuditFields
}
