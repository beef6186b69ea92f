package dashboard_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-freedom/pkg/dashboard"
	"github.com/goliatone/go-freedom/pkg/identity"
)

func mustBank(t *testing.T, id, balance string) dashboard.Bank {
	t.Helper()
	bank, err := dashboard.ParseBank(id, "", balance)
	if err != nil {
		t.Fatalf("parse bank: %v", err)
	}
	return bank
}

func TestSummarize_ExactTotals(t *testing.T) {
	user := &identity.Identity{FirstName: "Siddhartha", LastName: "Banerjee"}
	banks := []dashboard.Bank{mustBank(t, "b1", "2000.8"), mustBank(t, "b2", "2300.78")}

	summary := dashboard.Summarize(user, banks)
	if summary.Greeting() != "Welcome, Siddhartha" {
		t.Fatalf("greeting = %q", summary.Greeting())
	}
	if summary.TotalBanks != 2 {
		t.Fatalf("total banks = %d", summary.TotalBanks)
	}
	if !summary.TotalCurrentBalance.Equal(decimal.RequireFromString("4301.58")) {
		t.Fatalf("total = %s", summary.TotalCurrentBalance)
	}
	if summary.Balance() != "4301.58" {
		t.Fatalf("balance = %q", summary.Balance())
	}
	if len(summary.Shares) != 2 || summary.Shares[0].Name != "Bank1" {
		t.Fatalf("unexpected shares %+v", summary.Shares)
	}
	if got := summary.Shares[0].Percent.String(); got != "46.51" {
		t.Fatalf("share percent = %s", got)
	}
}

func TestSummarize_Fallbacks(t *testing.T) {
	summary := dashboard.Summarize(nil, nil)
	if summary.Greeting() != "Welcome, User" {
		t.Fatalf("greeting = %q", summary.Greeting())
	}
	if summary.Balance() != "0.00" || summary.TotalBanks != 0 || summary.Shares != nil {
		t.Fatalf("unexpected empty summary %+v", summary)
	}

	blank := dashboard.Summarize(&identity.Identity{FirstName: "  "}, nil)
	if blank.Name != dashboard.DefaultName {
		t.Fatalf("name = %q", blank.Name)
	}
}

func TestParseBank_Invalid(t *testing.T) {
	if _, err := dashboard.ParseBank("b1", "Chase", "12,00"); err == nil {
		t.Fatalf("expected parse error")
	}
}
