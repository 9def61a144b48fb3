package core

import (
	"fmt"
	"sort"
	"time"
)

type (
	// Transaction is a single financial event. Amount is signed: positive
	// values are income/credits, negative values are expenses/debits.
	// Transactions are immutable once produced by the ingestion layer,
	// which guarantees a valid date and non-empty category and account.
	Transaction struct {
		Date     time.Time `json:"date"`
		Amount   float64   `json:"amount"`
		Category string    `json:"category"`
		Account  string    `json:"account"`
	}

	// TransactionSet is an ordered sequence of transactions. No sort order
	// is required on input; operations never mutate the receiver.
	TransactionSet []Transaction

	// MonthKey identifies a year+month bucket, day-of-month discarded.
	MonthKey struct {
		Year  int
		Month time.Month
	}
)

// MonthKeyOf truncates a date to its year+month bucket.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// MarshalJSON renders the key as "YYYY-MM" for presentation consumers.
func (k MonthKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// ByAccount returns a new set containing only transactions for account.
func (ts TransactionSet) ByAccount(account string) TransactionSet {
	out := make(TransactionSet, 0, len(ts))
	for _, t := range ts {
		if t.Account == account {
			out = append(out, t)
		}
	}
	return out
}

// InRange returns transactions whose date falls within [start, end],
// both ends inclusive. A zero start or end leaves that side open.
func (ts TransactionSet) InRange(start, end time.Time) TransactionSet {
	out := make(TransactionSet, 0, len(ts))
	for _, t := range ts {
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortedByDate returns a date-ascending copy. The sort is stable so that
// transactions sharing a date keep their input order.
func (ts TransactionSet) SortedByDate() TransactionSet {
	out := make(TransactionSet, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Accounts returns the distinct account labels in first-seen order.
func (ts TransactionSet) Accounts() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range ts {
		if _, ok := seen[t.Account]; ok {
			continue
		}
		seen[t.Account] = struct{}{}
		out = append(out, t.Account)
	}
	return out
}

// Span returns the earliest and latest transaction dates in the set.
// Both are zero when the set is empty.
func (ts TransactionSet) Span() (start, end time.Time) {
	for _, t := range ts {
		if start.IsZero() || t.Date.Before(start) {
			start = t.Date
		}
		if end.IsZero() || t.Date.After(end) {
			end = t.Date
		}
	}
	return start, end
}
