package dto

import (
	"github.com/shopspring/decimal"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// BalanceResponse is one participant's signed position in one currency within
// a group. Positive = owed money; negative = owes money.
type BalanceResponse struct {
	UserID        *string         `json:"user_id"`
	ParticipantID string          `json:"participant_id"`
	Email         *string         `json:"email,omitempty"`
	FullName      *string         `json:"full_name,omitempty"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

// GroupBalancesResponse is one group's balance list.
type GroupBalancesResponse struct {
	GroupID   string            `json:"group_id"`
	GroupName string            `json:"group_name"`
	Balances  []BalanceResponse `json:"balances"`
}

// OverallBalanceResponse is the viewer's net position in one currency across
// all their groups.
type OverallBalanceResponse struct {
	UserID   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// BalancesResponse is the full balances envelope.
type BalancesResponse struct {
	GroupBalances   []GroupBalancesResponse  `json:"group_balances"`
	OverallBalances []OverallBalanceResponse `json:"overall_balances"`
}

// ToBalancesResponse converts a domain BalanceSheet to the response DTO
func ToBalancesResponse(sheet *domain.BalanceSheet) BalancesResponse {
	response := BalancesResponse{
		GroupBalances:   make([]GroupBalancesResponse, len(sheet.GroupBalances)),
		OverallBalances: make([]OverallBalanceResponse, len(sheet.OverallBalances)),
	}

	for i, gb := range sheet.GroupBalances {
		group := GroupBalancesResponse{
			GroupID:   gb.GroupID,
			GroupName: gb.GroupName,
			Balances:  make([]BalanceResponse, len(gb.Balances)),
		}
		for bi, b := range gb.Balances {
			group.Balances[bi] = BalanceResponse{
				UserID:        b.UserID,
				ParticipantID: b.ParticipantID,
				Email:         b.Email,
				FullName:      b.FullName,
				AvatarURL:     b.AvatarURL,
				Amount:        b.Amount,
				Currency:      b.CurrencyCode,
			}
		}
		response.GroupBalances[i] = group
	}

	for i, ob := range sheet.OverallBalances {
		response.OverallBalances[i] = OverallBalanceResponse{
			UserID:   ob.UserID,
			Amount:   ob.Amount,
			Currency: ob.CurrencyCode,
		}
	}

	return response
}
