package core

// BenchmarkPolicy is the recommended-spending reference table: category
// labels mapped to their recommended share of total spending, plus the
// margin in percentage points a category may exceed its share before it
// is flagged. The table is business policy, not mechanism, so hosts and
// tests can substitute their own.
type BenchmarkPolicy struct {
	Shares       map[string]float64
	TolerancePts float64
}

// DefaultBenchmarkPolicy returns the stock reference table.
func DefaultBenchmarkPolicy() BenchmarkPolicy {
	return BenchmarkPolicy{
		Shares: map[string]float64{
			"Housing":        30,
			"Transportation": 15,
			"Groceries":      15,
		},
		TolerancePts: 5,
	}
}

// benchmarkFinding is one category exceeding its recommended share.
type benchmarkFinding struct {
	Category     string
	ActualPct    float64
	Recommended  float64
	ThresholdPct float64
	// Opportunity is the dollar amount freed by reducing the category to
	// exactly its recommended share of total spending.
	Opportunity float64
}

// findings returns the categories whose actual share exceeds the
// recommended share by more than the tolerance, in the deterministic
// order of the spending mapping. Benchmark comparison and opportunity
// sizing both consume this single computation so their totals and shares
// can never drift apart. Categories absent from the table are never
// flagged.
func (p BenchmarkPolicy) findings(spending CategorySpending) []benchmarkFinding {
	total := spending.Total()
	if total <= 0 {
		return nil
	}

	var out []benchmarkFinding
	for _, ca := range spending {
		recommended, ok := p.Shares[ca.Category]
		if !ok {
			continue
		}
		actualPct := ca.Amount / total * 100
		threshold := recommended + p.TolerancePts
		if actualPct <= threshold {
			continue
		}
		out = append(out, benchmarkFinding{
			Category:     ca.Category,
			ActualPct:    actualPct,
			Recommended:  recommended,
			ThresholdPct: threshold,
			Opportunity:  ca.Amount - recommended/100*total,
		})
	}
	return out
}
