package domain

import "github.com/shopspring/decimal"

// Balance is a derived, never persisted net position for one participant in
// one currency. Positive means the participant is owed money; negative means
// the participant owes. Recomputed from scratch on every request.
type Balance struct {
	ParticipantID string          `json:"participantID"`
	UserID        *string         `json:"userID"` // Nil for participants without a linked account
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"` // Signed
}

// EnrichedBalance is a Balance decorated with display data for the linked
// account, or with the participant's own stored details when no account
// exists. Decoration is best effort and never changes the numbers.
type EnrichedBalance struct {
	Balance
	Email     *string `json:"email"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarURL"`
}

// GroupBalances is one group's computed balance list. A group whose store
// query failed contributes an empty Balances slice, never an error.
type GroupBalances struct {
	GroupID   string            `json:"groupID"`
	GroupName string            `json:"groupName"`
	Balances  []EnrichedBalance `json:"balances"`
}

// UserBalance is a viewer-level net position in one currency, aggregated over
// all of the viewer's groups.
type UserBalance struct {
	UserID       string          `json:"userID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"` // Signed
}

// BalanceSheet is the full answer to a balances request: every target group's
// participant-level balances plus the viewer's own overall position.
type BalanceSheet struct {
	GroupBalances   []GroupBalances `json:"groupBalances"`
	OverallBalances []UserBalance   `json:"overallBalances"`
}
