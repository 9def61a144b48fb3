package core

import (
	"strings"
	"testing"
)

func TestSavingsHealthBands(t *testing.T) {
	cases := []struct {
		name     string
		income   float64
		expenses float64
		want     string
	}{
		{"no income", 0, -100, "cannot be assessed"},
		{"negative income", -50, 0, "cannot be assessed"},
		{"deficit", 1000, -1200, "Deficit"},
		{"excellent at boundary", 1000, -750, "Excellent"}, // rate == 25
		{"excellent above", 1000, -500, "Excellent"},
		{"good at boundary", 1000, -850, "Good"}, // rate == 15
		{"good", 1000, -800, "Good"},
		{"moderate at boundary", 1000, -950, "Moderate"}, // rate == 5
		{"moderate", 1000, -900, "Moderate"},
		{"low", 1000, -990, "Low"},
		{"low at zero", 1000, -1000, "Low"},
	}
	for _, tc := range cases {
		got := SavingsHealth(tc.income, tc.expenses)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%s: expected %q in message %q", tc.name, tc.want, got)
		}
	}
}

func TestTrendInsufficientData(t *testing.T) {
	ts := TransactionSet{tx("2025-01-05", 100, "Salary", "a")}
	msgs := Trend(ts)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "at least two months") {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestTrendNearZeroGuard(t *testing.T) {
	ts := TransactionSet{
		tx("2025-01-05", 0.5, "Salary", "a"),
		tx("2025-02-05", 100, "Salary", "a"),
	}
	msgs := Trend(ts)
	if !strings.Contains(msgs[0], "near zero") {
		t.Fatalf("expected near-zero guard, got %v", msgs)
	}
}

func TestTrendStableWhenBothZero(t *testing.T) {
	ts := TransactionSet{
		tx("2025-01-05", 100, "Salary", "a"),
		tx("2025-01-06", -100, "Housing", "a"),
		tx("2025-02-05", 100, "Salary", "a"),
		tx("2025-02-06", -100, "Housing", "a"),
	}
	msgs := Trend(ts)
	if !strings.Contains(msgs[0], "stable") {
		t.Fatalf("expected stable, got %v", msgs)
	}
}

func TestTrendBands(t *testing.T) {
	cases := []struct {
		name string
		prev float64
		last float64
		want string
	}{
		{"significant improvement", 100, 110, "improved significantly"},
		{"slight improvement at deadband", 100, 105, "improved slightly"}, // pct == 5 is not > 5
		{"slight decline", 100, 96, "declined slightly"},
		{"slight decline at deadband", 100, 95, "declined slightly"}, // pct == -5
		{"significant decline", 1200, 1000, "declined significantly"},
	}
	for _, tc := range cases {
		ts := TransactionSet{
			tx("2025-01-05", tc.prev, "Salary", "a"),
			tx("2025-02-05", tc.last, "Salary", "a"),
		}
		msgs := Trend(ts)
		if !strings.Contains(msgs[0], tc.want) {
			t.Fatalf("%s: expected %q in %q", tc.name, tc.want, msgs[0])
		}
	}
}

func TestTrendSlightImprovementPercent(t *testing.T) {
	ts := TransactionSet{
		tx("2025-01-05", 100, "Salary", "a"),
		tx("2025-02-05", 105, "Salary", "a"),
	}
	msgs := Trend(ts)
	if !strings.Contains(msgs[0], "+5.0%") {
		t.Fatalf("expected +5.0%% in %q", msgs[0])
	}
}

func TestTrendCategoryDriver(t *testing.T) {
	ts := TransactionSet{
		tx("2025-01-05", 2000, "Salary", "a"),
		tx("2025-01-10", -600, "Housing", "a"),
		tx("2025-01-20", -200, "Groceries", "a"),
		tx("2025-02-05", 2000, "Salary", "a"),
		tx("2025-02-10", -900, "Housing", "a"),
		tx("2025-02-15", -100, "Groceries", "a"),
	}
	msgs := Trend(ts)
	if len(msgs) != 2 {
		t.Fatalf("expected trend plus driver message, got %v", msgs)
	}
	if !strings.Contains(msgs[1], "Housing") || !strings.Contains(msgs[1], "$300.00") {
		t.Fatalf("unexpected driver message: %q", msgs[1])
	}
}

func TestTrendNoDriverWhenSpendingFell(t *testing.T) {
	ts := TransactionSet{
		tx("2025-01-10", -600, "Housing", "a"),
		tx("2025-01-05", 1000, "Salary", "a"),
		tx("2025-02-10", -500, "Housing", "a"),
		tx("2025-02-05", 1000, "Salary", "a"),
	}
	msgs := Trend(ts)
	if len(msgs) != 1 {
		t.Fatalf("expected no driver message when every category fell: %v", msgs)
	}
}

func TestConcentrationBands(t *testing.T) {
	cases := []struct {
		name     string
		spending CategorySpending
		want     string
	}{
		{"empty", nil, "No spending"},
		{"high", CategorySpending{{"Housing", 1500}, {"Groceries", 300}}, "High concentration risk"},
		{"notable", CategorySpending{{"Housing", 40}, {"Groceries", 35}, {"Dining", 25}}, "Notable concentration"},
		{"informational", CategorySpending{{"A", 30}, {"B", 25}, {"C", 25}, {"D", 20}}, "Largest spending category"},
	}
	for _, tc := range cases {
		msgs := Concentration(tc.spending)
		if !strings.Contains(msgs[0], tc.want) {
			t.Fatalf("%s: expected %q in %q", tc.name, tc.want, msgs[0])
		}
	}
}

func TestConcentrationSingleCategoryIsHundredPercent(t *testing.T) {
	msgs := Concentration(CategorySpending{{"Housing", 500}})
	if !strings.Contains(msgs[0], "100.0%") {
		t.Fatalf("expected exactly 100.0%%, got %q", msgs[0])
	}
}

func TestConcentrationGranularityNote(t *testing.T) {
	msgs := Concentration(CategorySpending{{"Housing", 60}, {"Groceries", 40}})
	if len(msgs) != 2 || !strings.Contains(msgs[1], "2 spending categories") {
		t.Fatalf("expected granularity note, got %v", msgs)
	}

	msgs = Concentration(CategorySpending{{"A", 30}, {"B", 25}, {"C", 25}, {"D", 20}})
	if len(msgs) != 1 {
		t.Fatalf("expected no granularity note for 4 categories, got %v", msgs)
	}
}

func TestBenchmarkComparisonFlagsExcess(t *testing.T) {
	// Housing at 40% of 10k against a 30% benchmark with 5-point
	// tolerance must be flagged.
	spending := CategorySpending{
		{"Housing", 4000},
		{"Dining", 3500}, // not in the benchmark table, never flagged
		{"Groceries", 2500},
	}
	policy := DefaultBenchmarkPolicy()

	msgs := BenchmarkComparison(spending, policy)
	if len(msgs) != 2 {
		t.Fatalf("expected Housing and Groceries warnings, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "Housing") || !strings.Contains(msgs[0], "40.0%") {
		t.Fatalf("unexpected message: %q", msgs[0])
	}
	for _, m := range msgs {
		if strings.Contains(m, "Dining") {
			t.Fatalf("category outside the benchmark table was flagged: %q", m)
		}
	}
}

func TestBenchmarkWithinGuidelines(t *testing.T) {
	spending := CategorySpending{
		{"Housing", 300},
		{"Other", 700},
	}
	msgs := BenchmarkComparison(spending, DefaultBenchmarkPolicy())
	if len(msgs) != 1 || !strings.Contains(msgs[0], "within recommended guidelines") {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestOpportunitySizing(t *testing.T) {
	spending := CategorySpending{
		{"Housing", 4000},
		{"Other", 6000},
	}
	msgs := Opportunities(spending, DefaultBenchmarkPolicy())
	if len(msgs) != 1 {
		t.Fatalf("expected one opportunity, got %v", msgs)
	}
	// 4000 - 0.30*10000 = 1000
	if !strings.Contains(msgs[0], "Housing") || !strings.Contains(msgs[0], "$1000") {
		t.Fatalf("unexpected opportunity message: %q", msgs[0])
	}
}

func TestOpportunityNoneFlagged(t *testing.T) {
	spending := CategorySpending{{"Other", 1000}}
	msgs := Opportunities(spending, DefaultBenchmarkPolicy())
	if len(msgs) != 1 || !strings.Contains(msgs[0], "No quick-win") {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestDeficitRunway(t *testing.T) {
	if got := DeficitRunway(nil); !strings.Contains(got, "No transaction data") {
		t.Fatalf("unexpected empty-set message: %q", got)
	}

	surplus := TransactionSet{
		tx("2025-01-05", -100, "Housing", "a"),
		tx("2025-02-05", 100, "Salary", "a"),
	}
	if got := DeficitRunway(surplus); !strings.Contains(got, "No deficit") {
		t.Fatalf("unexpected surplus message: %q", got)
	}

	// Monthly nets [-100, -50]: mean -75, sum -150, runway 2.0 months.
	deficit := TransactionSet{
		tx("2025-01-05", -100, "Housing", "a"),
		tx("2025-02-05", -50, "Housing", "a"),
	}
	got := DeficitRunway(deficit)
	if !strings.Contains(got, "$50.00") {
		t.Fatalf("expected deficit magnitude in %q", got)
	}
	if !strings.Contains(got, "2.0 months") {
		t.Fatalf("expected 2.0 month runway in %q", got)
	}
	if !strings.Contains(got, "linear extrapolation") {
		t.Fatalf("runway message must state its assumption: %q", got)
	}
}

func TestDeficitWithoutHistoryHasNoRunway(t *testing.T) {
	single := TransactionSet{tx("2025-01-05", -100, "Housing", "a")}
	got := DeficitRunway(single)
	if !strings.Contains(got, "$100.00") || strings.Contains(got, "months") {
		t.Fatalf("single-month deficit should report magnitude only: %q", got)
	}
}
