package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InsightsPrompt builds the prompt for the short dashboard health advice
// from the numbers the forecast produced.
func InsightsPrompt(income, expenses, balance, dailyAverage, estimated decimal.Decimal, burnout *time.Time) string {
	var b strings.Builder

	b.WriteString("You are a friendly financial advisor. A user has the following numbers for the current month:\n")
	fmt.Fprintf(&b, "- Total income: %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "- Total expenses: %s\n", expenses.StringFixed(2))
	fmt.Fprintf(&b, "- Current balance: %s\n", balance.StringFixed(2))
	fmt.Fprintf(&b, "- Average daily spend: %s\n", dailyAverage.StringFixed(2))
	fmt.Fprintf(&b, "- Estimated spend by the end of the month: %s\n", estimated.StringFixed(2))

	if burnout != nil {
		fmt.Fprintf(&b, "At the current rate, their balance runs out around %s.\n", burnout.Format("2006-01-02"))
	} else {
		b.WriteString("There is no immediate alert, the balance survives the month at the current rate.\n")
	}

	b.WriteString("Reply with one or two encouraging sentences of concrete advice. Plain text, no Markdown.")

	return b.String()
}

// AnalyzePrompt builds the prompt for the full spending analysis from
// per-type, per-category totals formatted as "type - category: total".
func AnalyzePrompt(summary []string) string {
	var b strings.Builder

	b.WriteString("Act as an experienced, approachable financial advisor. ")
	b.WriteString("Analyze the following financial movements of a user and provide:\n")
	b.WriteString("1. A short summary of where their money is going.\n")
	b.WriteString("2. Three actionable tips to improve their financial health or reduce spending.\n")
	b.WriteString("3. An investment recommendation fitting their situation (assume a moderate profile).\n\n")
	b.WriteString("TRANSACTION DATA (type - category: total):\n")

	for _, line := range summary {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\nUse a formal but motivating tone. Use Markdown formatting (bold, lists).")

	return b.String()
}
