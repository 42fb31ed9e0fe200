package mapping

import (
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	"github.com/splitpal/splitpal_backend/internal/models"
)

// ToDomainExpense converts a model Expense and its split rows to a domain Expense
func ToDomainExpense(m models.Expense, splits []models.ExpenseSplit) domain.Expense {
	d := domain.Expense{
		ExpenseID:    m.ExpenseID,
		GroupID:      m.GroupID,
		PaidBy:       m.PaidBy,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		ExpenseDate:  m.ExpenseDate,
		Splits:       make([]domain.ExpenseSplit, len(splits)),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	for i, s := range splits {
		d.Splits[i] = ToDomainExpenseSplit(s)
	}
	return d
}

// ToDomainExpenseSplit converts a model ExpenseSplit to a domain ExpenseSplit
func ToDomainExpenseSplit(m models.ExpenseSplit) domain.ExpenseSplit {
	return domain.ExpenseSplit{
		SplitID:       m.SplitID,
		ExpenseID:     m.ExpenseID,
		ParticipantID: m.ParticipantID,
		Amount:        m.Amount,
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID:    m.SettlementID,
		GroupID:         m.GroupID,
		FromParticipant: m.FromParticipant,
		ToParticipant:   m.ToParticipant,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		SettledAt:       m.SettledAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSettlementSlice converts a slice of model Settlements to domain Settlements
func ToDomainSettlementSlice(ms []models.Settlement) []domain.Settlement {
	ds := make([]domain.Settlement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlement(m)
	}
	return ds
}
