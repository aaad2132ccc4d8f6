package assistant

import (
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

func sampleDigest() core.Digest {
	records := []core.Transaction{
		{ID: "1", Kind: core.Expense, Title: "Lunch", Amount: core.Money{Cents: 5000},
			Category: "Food", OccurredAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Kind: core.Income, Title: "Salary", Amount: core.Money{Cents: 200000},
			Category: "Salary", OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	return core.BuildDigest(records, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
}

func TestSystemPromptContent(t *testing.T) {
	prompt := SystemPrompt(sampleDigest())

	for _, want := range []string{
		"personal finance assistant",
		"Current Financial Data:",
		"- Total Income (all time): $2000.00",
		"- Total Expenses (all time): $50.00",
		"- Net Balance: $1950.00",
		"This Month:",
		"Category Breakdown:",
		"- Food: Spent $50.00, Earned $0.00",
		"- Salary: Spent $0.00, Earned $2000.00",
		"Total Transactions: 2",
		"Recent Transactions (last 5):",
		"- Lunch: $50.00 (expense, Food)",
		"Guidelines:",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSystemPromptDeterministic(t *testing.T) {
	d := sampleDigest()
	first := SystemPrompt(d)
	for i := 0; i < 10; i++ {
		if got := SystemPrompt(d); got != first {
			t.Fatalf("prompt not deterministic on run %d", i)
		}
	}
}

func TestSystemPromptEmptyDigest(t *testing.T) {
	d := core.BuildDigest(nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	prompt := SystemPrompt(d)

	if !strings.Contains(prompt, "- Net Balance: $0.00") {
		t.Fatalf("empty digest prompt missing zero balance:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Total Transactions: 0") {
		t.Fatalf("empty digest prompt missing zero count:\n%s", prompt)
	}
}
