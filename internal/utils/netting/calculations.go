// Package netting holds the pure arithmetic used by balance computation:
// a per-request accumulator of signed amounts keyed by participant and
// currency, plus the rounding and filtering applied when collapsing it.
package netting

import (
	"github.com/shopspring/decimal"
)

// Epsilon is the absolute threshold below which a rounded balance is treated
// as settled and dropped from results.
var Epsilon = decimal.NewFromFloat(0.01)

// currencyPrecision maps currency codes to their minor-unit precision where it
// differs from the common 2-decimal case.
var currencyPrecision = map[string]int32{
	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,
}

// MinorUnits returns the number of minor-unit decimal places for a currency
// code, defaulting to 2 for unknown codes.
func MinorUnits(currencyCode string) int32 {
	if p, ok := currencyPrecision[currencyCode]; ok {
		return p
	}
	return 2
}

// RoundToMinorUnits rounds an amount to the currency's minor-unit precision,
// half away from zero.
func RoundToMinorUnits(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(MinorUnits(currencyCode))
}

// IsSettled reports whether a rounded amount is within Epsilon of zero.
func IsSettled(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(Epsilon)
}

// Key identifies one accumulator bucket: a participant's running total in one
// currency. Amounts in different currencies are never netted together.
type Key struct {
	ParticipantID string
	CurrencyCode  string
}

// Accumulator collects signed running totals per (participant, currency).
// It is request-scoped by construction; callers create one per computation.
type Accumulator struct {
	totals map[Key]decimal.Decimal
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[Key]decimal.Decimal)}
}

// Credit increases a participant's balance: money is owed to them.
func (a *Accumulator) Credit(participantID, currencyCode string, amount decimal.Decimal) {
	k := Key{ParticipantID: participantID, CurrencyCode: currencyCode}
	a.totals[k] = a.totals[k].Add(amount)
}

// Debit decreases a participant's balance: they owe money.
func (a *Accumulator) Debit(participantID, currencyCode string, amount decimal.Decimal) {
	k := Key{ParticipantID: participantID, CurrencyCode: currencyCode}
	a.totals[k] = a.totals[k].Sub(amount)
}

// Entry is one collapsed accumulator bucket after rounding.
type Entry struct {
	ParticipantID string
	CurrencyCode  string
	Amount        decimal.Decimal
}

// Collapse rounds every bucket to its currency's minor units and drops
// entries that round to within Epsilon of zero. Because every credit in the
// accumulator has a matching debit, the surviving entries for one currency
// sum to zero within rounding error.
func (a *Accumulator) Collapse() []Entry {
	entries := make([]Entry, 0, len(a.totals))
	for k, total := range a.totals {
		rounded := RoundToMinorUnits(total, k.CurrencyCode)
		if IsSettled(rounded) {
			continue
		}
		entries = append(entries, Entry{
			ParticipantID: k.ParticipantID,
			CurrencyCode:  k.CurrencyCode,
			Amount:        rounded,
		})
	}
	return entries
}
