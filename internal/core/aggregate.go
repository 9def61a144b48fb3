package core

import "sort"

type (
	// MonthlyNet is the summed amount for one month.
	MonthlyNet struct {
		Month MonthKey `json:"month"`
		Net   float64  `json:"net"`
	}

	// MonthlyNetSeries maps months to net amounts, ordered ascending by
	// month. Months without transactions are absent, never zero-filled.
	MonthlyNetSeries []MonthlyNet

	// CategoryAmount is the absolute expense total for one category.
	CategoryAmount struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// CategorySpending maps category labels to absolute expense totals,
	// ordered descending by amount with ties broken by label ascending.
	// Categories with no expense activity are absent, not zero-valued.
	CategorySpending []CategoryAmount
)

// TotalIncome sums all positive amounts. Zero for an empty set.
func TotalIncome(ts TransactionSet) float64 {
	var total float64
	for _, t := range ts {
		if t.Amount > 0 {
			total += t.Amount
		}
	}
	return total
}

// TotalExpenses sums all negative amounts. The result is always <= 0.
func TotalExpenses(ts TransactionSet) float64 {
	var total float64
	for _, t := range ts {
		if t.Amount < 0 {
			total += t.Amount
		}
	}
	return total
}

// NetByMonth groups transactions by month and sums their amounts.
func NetByMonth(ts TransactionSet) MonthlyNetSeries {
	sums := make(map[MonthKey]float64)
	for _, t := range ts {
		sums[MonthKeyOf(t.Date)] += t.Amount
	}

	series := make(MonthlyNetSeries, 0, len(sums))
	for k, net := range sums {
		series = append(series, MonthlyNet{Month: k, Net: net})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}

// SpendingByCategory groups expense transactions (negative amounts) by
// category and sums their absolute values.
func SpendingByCategory(ts TransactionSet) CategorySpending {
	sums := make(map[string]float64)
	for _, t := range ts {
		if t.Amount < 0 {
			sums[t.Category] += -t.Amount
		}
	}

	spending := make(CategorySpending, 0, len(sums))
	for cat, amt := range sums {
		spending = append(spending, CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(spending, func(i, j int) bool {
		if spending[i].Amount != spending[j].Amount {
			return spending[i].Amount > spending[j].Amount
		}
		return spending[i].Category < spending[j].Category
	})
	return spending
}

// CumulativeFlow sorts transactions by date ascending and emits the
// running sum of amounts, one value per transaction.
func CumulativeFlow(ts TransactionSet) []float64 {
	sorted := ts.SortedByDate()
	flow := make([]float64, len(sorted))
	var running float64
	for i, t := range sorted {
		running += t.Amount
		flow[i] = running
	}
	return flow
}

// Total returns the summed spending across all categories.
func (cs CategorySpending) Total() float64 {
	var total float64
	for _, ca := range cs {
		total += ca.Amount
	}
	return total
}

// Amount returns the spending recorded for a category, zero when absent.
func (cs CategorySpending) AmountFor(category string) float64 {
	for _, ca := range cs {
		if ca.Category == category {
			return ca.Amount
		}
	}
	return 0
}

// Last returns the most recent entry. The boolean is false for an empty
// series.
func (s MonthlyNetSeries) Last() (MonthlyNet, bool) {
	if len(s) == 0 {
		return MonthlyNet{}, false
	}
	return s[len(s)-1], true
}

// Sum returns the total of all monthly nets.
func (s MonthlyNetSeries) Sum() float64 {
	var total float64
	for _, m := range s {
		total += m.Net
	}
	return total
}

// Mean returns the average monthly net, zero for an empty series.
func (s MonthlyNetSeries) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s))
}
