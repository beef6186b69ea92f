// Package dashboard builds the signed-in home page summary: the greeting and
// the aggregate balance across linked bank accounts. Amounts are exact
// decimals; currency formatting is left to the presentation layer.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-freedom/pkg/identity"
)

// DefaultName is greeted when the user has no first name.
const DefaultName = "User"

// Subtext is the line shown under the greeting.
const Subtext = "Access and manage your account and transactions efficiently!"

// Bank is one linked account as reported by the account linking service.
type Bank struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// Share is a bank's fraction of the total balance, used for the balance
// chart.
type Share struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Percent decimal.Decimal `json:"percent"`
}

// Summary is the home page header data.
type Summary struct {
	Name                string          `json:"name"`
	TotalBanks          int             `json:"totalBanks"`
	TotalCurrentBalance decimal.Decimal `json:"totalCurrentBalance"`
	Shares              []Share         `json:"shares,omitempty"`
}

// Summarize aggregates banks for user. user may be nil before the session is
// resolved.
func Summarize(user *identity.Identity, banks []Bank) Summary {
	summary := Summary{
		Name:                DefaultName,
		TotalBanks:          len(banks),
		TotalCurrentBalance: decimal.Zero,
	}
	if user != nil {
		if name := strings.TrimSpace(user.FirstName); name != "" {
			summary.Name = name
		}
	}

	for _, bank := range banks {
		summary.TotalCurrentBalance = summary.TotalCurrentBalance.Add(bank.CurrentBalance)
	}

	if summary.TotalCurrentBalance.IsPositive() {
		hundred := decimal.NewFromInt(100)
		summary.Shares = make([]Share, 0, len(banks))
		for i, bank := range banks {
			name := bank.Name
			if name == "" {
				name = fmt.Sprintf("Bank%d", i+1)
			}
			summary.Shares = append(summary.Shares, Share{
				Name:    name,
				Balance: bank.CurrentBalance,
				Percent: bank.CurrentBalance.Mul(hundred).DivRound(summary.TotalCurrentBalance, 2),
			})
		}
	}
	return summary
}

// Greeting returns "Welcome, <name>".
func (s Summary) Greeting() string {
	name := s.Name
	if name == "" {
		name = DefaultName
	}
	return "Welcome, " + name
}

// Balance returns the total rounded to two places, e.g. "4301.58".
func (s Summary) Balance() string {
	return s.TotalCurrentBalance.StringFixed(2)
}

// ParseBank builds a Bank from a decimal string balance.
func ParseBank(id, name, balance string) (Bank, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(balance))
	if err != nil {
		return Bank{}, fmt.Errorf("dashboard: parse balance for %q: %w", id, err)
	}
	return Bank{ID: id, Name: name, CurrentBalance: amount}, nil
}
