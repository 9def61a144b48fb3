package core

import (
	"fmt"
	"math"
)

// Classifier policy constants. Savings bands are contiguous: a rate that
// lands exactly on a boundary belongs to the higher band.
const (
	savingsExcellentPct = 25.0
	savingsGoodPct      = 15.0
	savingsModeratePct  = 5.0

	// trendDeadbandPct separates "slight" from "significant" changes.
	trendDeadbandPct = 5.0
	// trendNearZeroNet guards the percentage division: a previous month
	// with a net this close to zero makes the change meaningless.
	trendNearZeroNet = 1.0

	concentrationHighPct    = 50.0
	concentrationNotablePct = 35.0
	// concentrationMinCategories is the distinct-category count at or
	// below which categorization looks too coarse to be useful.
	concentrationMinCategories = 3
)

// SavingsHealth classifies the period's savings rate into a band and
// returns the matching diagnostic sentence.
func SavingsHealth(totalIncome, totalExpenses float64) string {
	net := totalIncome + totalExpenses
	if totalIncome <= 0 {
		return "No meaningful income was recorded for this period, so savings health cannot be assessed."
	}
	if net < 0 {
		overspend := -net / totalIncome * 100
		return fmt.Sprintf("Deficit: spending exceeded income by %.1f%% of income this period.", overspend)
	}

	rate := net / totalIncome * 100
	switch {
	case rate >= savingsExcellentPct:
		return fmt.Sprintf("Excellent savings health: you kept %.1f%% of your income.", rate)
	case rate >= savingsGoodPct:
		return fmt.Sprintf("Good savings health: you kept %.1f%% of your income.", rate)
	case rate >= savingsModeratePct:
		return fmt.Sprintf("Moderate savings health: you kept %.1f%% of your income. Aim for 15%% or more.", rate)
	default:
		return fmt.Sprintf("Low savings rate: only %.1f%% of income was kept. Consider reviewing recurring expenses.", rate)
	}
}

// Trend compares the two most recent monthly nets and classifies the
// month-over-month change. When category spending rose between those
// months, a second message names the category driving the increase.
func Trend(ts TransactionSet) []string {
	series := NetByMonth(ts)
	if len(series) < 2 {
		return []string{"Not enough monthly history to evaluate a trend: at least two months are needed."}
	}

	prev := series[len(series)-2]
	last := series[len(series)-1]

	var msgs []string
	switch {
	case last.Net == prev.Net:
		// Identical nets are a 0% change even when both are zero.
		msgs = append(msgs, "Monthly net was stable versus the previous month.")
	case math.Abs(prev.Net) < trendNearZeroNet:
		msgs = append(msgs, "The previous month's net was near zero, so a percentage change would not be meaningful.")
	default:
		pct := (last.Net - prev.Net) / math.Abs(prev.Net) * 100
		switch {
		case pct > trendDeadbandPct:
			msgs = append(msgs, fmt.Sprintf("Monthly net improved significantly: %+.1f%% versus the previous month.", pct))
		case pct > 0:
			msgs = append(msgs, fmt.Sprintf("Monthly net improved slightly: %+.1f%% versus the previous month.", pct))
		case pct >= -trendDeadbandPct:
			msgs = append(msgs, fmt.Sprintf("Monthly net declined slightly: %+.1f%% versus the previous month.", pct))
		default:
			msgs = append(msgs, fmt.Sprintf("Monthly net declined significantly: %+.1f%% versus the previous month.", pct))
		}
	}

	if cat, increase := largestSpendingIncrease(ts, prev.Month, last.Month); increase > 0 {
		msgs = append(msgs, fmt.Sprintf("The largest month-over-month spending increase came from %s, up $%.2f.", cat, increase))
	}
	return msgs
}

// largestSpendingIncrease finds the category whose expense magnitude grew
// the most between two months. Ties break by label ascending.
func largestSpendingIncrease(ts TransactionSet, prev, last MonthKey) (string, float64) {
	prevSpend := SpendingByCategory(inMonth(ts, prev))
	lastSpend := SpendingByCategory(inMonth(ts, last))

	var bestCat string
	var bestInc float64
	for _, ca := range lastSpend {
		inc := ca.Amount - prevSpend.AmountFor(ca.Category)
		if inc > bestInc || (inc == bestInc && inc > 0 && ca.Category < bestCat) {
			bestCat = ca.Category
			bestInc = inc
		}
	}
	return bestCat, bestInc
}

func inMonth(ts TransactionSet, key MonthKey) TransactionSet {
	out := make(TransactionSet, 0, len(ts))
	for _, t := range ts {
		if MonthKeyOf(t.Date) == key {
			out = append(out, t)
		}
	}
	return out
}

// Concentration reports how dominated spending is by its largest
// category, plus a granularity note when few categories exist.
func Concentration(spending CategorySpending) []string {
	total := spending.Total()
	if len(spending) == 0 || total == 0 {
		return []string{"No spending was recorded in this period."}
	}

	// The mapping is ordered descending with deterministic ties, so the
	// first entry is the maximum.
	top := spending[0]
	pct := top.Amount / total * 100

	var msgs []string
	switch {
	case pct >= concentrationHighPct:
		msgs = append(msgs, fmt.Sprintf("High concentration risk: %s accounts for %.1f%% of all spending.", top.Category, pct))
	case pct >= concentrationNotablePct:
		msgs = append(msgs, fmt.Sprintf("Notable concentration: %s accounts for %.1f%% of all spending.", top.Category, pct))
	default:
		msgs = append(msgs, fmt.Sprintf("Largest spending category: %s at %.1f%% of total.", top.Category, pct))
	}

	if len(spending) <= concentrationMinCategories {
		msgs = append(msgs, fmt.Sprintf("Only %d spending categories were found; more granular categorization would sharpen this analysis.", len(spending)))
	}
	return msgs
}

// BenchmarkComparison flags categories whose share of spending exceeds
// the policy's recommended share by more than the tolerance.
func BenchmarkComparison(spending CategorySpending, policy BenchmarkPolicy) []string {
	findings := policy.findings(spending)
	if len(findings) == 0 {
		return []string{"Category spending is within recommended guidelines."}
	}

	msgs := make([]string, 0, len(findings))
	for _, f := range findings {
		msgs = append(msgs, fmt.Sprintf("%s takes %.1f%% of spending, %.1f points over the %.0f%% warning threshold (recommended %.0f%%).",
			f.Category, f.ActualPct, f.ActualPct-f.ThresholdPct, f.ThresholdPct, f.Recommended))
	}
	return msgs
}

// Opportunities sizes the dollar amount freed by trimming each flagged
// category back to its recommended share. It reads the same spending
// mapping and findings as BenchmarkComparison.
func Opportunities(spending CategorySpending, policy BenchmarkPolicy) []string {
	findings := policy.findings(spending)
	if len(findings) == 0 {
		return []string{"No quick-win savings opportunities were identified."}
	}

	msgs := make([]string, 0, len(findings))
	for _, f := range findings {
		msgs = append(msgs, fmt.Sprintf("Reducing %s to its recommended share would free about $%.0f.", f.Category, f.Opportunity))
	}
	return msgs
}

// DeficitRunway inspects the most recent month's net and, when the set
// is running an average monthly deficit, estimates how many months of
// reserves remain under a linear extrapolation.
func DeficitRunway(ts TransactionSet) string {
	series := NetByMonth(ts)
	if len(series) == 0 {
		return "No transaction data is available to assess deficits."
	}

	last, _ := series.Last()
	if last.Net >= 0 {
		return "No deficit in the most recent month."
	}

	msg := fmt.Sprintf("The most recent month ran a deficit of $%.2f.", -last.Net)
	if len(series) >= 2 {
		if mean := series.Mean(); mean < 0 {
			runway := math.Abs(series.Sum() / mean)
			msg += fmt.Sprintf(" At the current average burn rate, reserves cover roughly %.1f months (linear extrapolation, not a forecast).", runway)
		}
	}
	return msg
}
