package assistant

import (
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// SystemPrompt renders the digest into the instruction block sent with the
// user's question. Deterministic: identical digests render byte-identical
// prompts.
func SystemPrompt(d core.Digest) string {
	var b strings.Builder

	b.WriteString("You are a helpful and friendly personal finance assistant. ")
	b.WriteString("You help users understand their spending habits, provide insights, and offer practical advice.\n\n")

	fmt.Fprintf(&b, "Current Financial Data:\n")
	fmt.Fprintf(&b, "- Total Income (all time): $%s\n", d.AllTime.Income)
	fmt.Fprintf(&b, "- Total Expenses (all time): $%s\n", d.AllTime.Expense)
	fmt.Fprintf(&b, "- Net Balance: $%s\n\n", d.AllTime.Net)

	fmt.Fprintf(&b, "This Month:\n")
	fmt.Fprintf(&b, "- Income: $%s\n", d.ThisPeriod.Income)
	fmt.Fprintf(&b, "- Expenses: $%s\n", d.ThisPeriod.Expense)
	fmt.Fprintf(&b, "- Balance: $%s\n\n", d.ThisPeriod.Net)

	b.WriteString("Category Breakdown:\n")
	for _, c := range d.Categories {
		fmt.Fprintf(&b, "- %s: Spent $%s, Earned $%s\n", c.Name, c.Expense, c.Income)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total Transactions: %d\n\n", d.Count)

	b.WriteString("Recent Transactions (last 5):\n")
	for _, r := range d.Recent {
		fmt.Fprintf(&b, "- %s: $%s (%s, %s)\n", r.Title, r.Amount, r.Kind, r.Category)
	}
	b.WriteString("\n")

	b.WriteString(`Guidelines:
- Be concise and mobile-friendly in responses (short paragraphs)
- Use simple language and avoid jargon
- Give specific, actionable advice when asked
- Reference the user's actual data when relevant
- Be encouraging but honest about spending habits
- When asked about trends, analyze the data provided
- Format numbers as currency with $ sign`)

	return b.String()
}
