package core

import "time"

// AnalysisResult is the single output of one (account, date-range)
// analysis. It is assembled once and never mutated afterwards.
type AnalysisResult struct {
	Account string    `json:"account"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`

	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetSavings    float64 `json:"net_savings"`
	// SavingsRate is net savings as a percentage of income, zero when no
	// income was recorded.
	SavingsRate float64 `json:"savings_rate"`

	MonthlyNet     MonthlyNetSeries `json:"monthly_net"`
	Spending       CategorySpending `json:"category_spending"`
	CumulativeFlow []float64        `json:"cumulative_flow"`

	// Insights holds the classifier messages in a fixed order: savings
	// health, trend, concentration, benchmark comparison, opportunity
	// sizing, deficit/runway.
	Insights []string `json:"insights"`
}

// Analyze filters the set to one account and date range, derives all
// aggregates, and runs every classifier. It is a pure function: equal
// inputs produce identical results, an empty selection produces zero
// totals and informational messages, never an error.
func Analyze(ts TransactionSet, account string, start, end time.Time, policy BenchmarkPolicy) AnalysisResult {
	selected := ts.ByAccount(account).InRange(start, end)

	income := TotalIncome(selected)
	expenses := TotalExpenses(selected)
	net := income + expenses
	var rate float64
	if income > 0 {
		rate = net / income * 100
	}

	spending := SpendingByCategory(selected)

	insights := make([]string, 0, 8)
	insights = append(insights, SavingsHealth(income, expenses))
	insights = append(insights, Trend(selected)...)
	insights = append(insights, Concentration(spending)...)
	insights = append(insights, BenchmarkComparison(spending, policy)...)
	insights = append(insights, Opportunities(spending, policy)...)
	insights = append(insights, DeficitRunway(selected))

	return AnalysisResult{
		Account:        account,
		Start:          start,
		End:            end,
		TotalIncome:    income,
		TotalExpenses:  expenses,
		NetSavings:     net,
		SavingsRate:    rate,
		MonthlyNet:     NetByMonth(selected),
		Spending:       spending,
		CumulativeFlow: CumulativeFlow(selected),
		Insights:       insights,
	}
}
