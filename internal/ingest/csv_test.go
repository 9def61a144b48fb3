package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	in := "Date,Amount,Category,Account\n" +
		"2025-01-05,2000,Salary,Checking\n" +
		"2025-01-10,-600.50,Housing,Checking\n"
	res, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Transactions) != 2 || res.Dropped != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	got := res.Transactions[1]
	if got.Amount != -600.50 || got.Category != "Housing" || got.Account != "Checking" {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if got.Date.Format("2006-01-02") != "2025-01-10" {
		t.Fatalf("unexpected date: %v", got.Date)
	}
}

func TestParseCSVHeaderNormalization(t *testing.T) {
	// BOM, mixed case, and padded headers, as utf-8-sig exports produce.
	in := "\ufeff date , AMOUNT ,category\n2025-01-05,100,Salary\n"
	res, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestParseCSVDefaults(t *testing.T) {
	cases := []struct {
		name         string
		in           string
		wantCategory string
		wantAccount  string
	}{
		{
			"missing columns",
			"Date,Amount\n2025-01-05,100\n",
			DefaultCategory, DefaultAccount,
		},
		{
			"blank cells",
			"Date,Amount,Category,Account\n2025-01-05,100,,\n",
			DefaultCategory, DefaultAccount,
		},
	}
	for _, tc := range cases {
		res, err := ParseCSV(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		got := res.Transactions[0]
		if got.Category != tc.wantCategory || got.Account != tc.wantAccount {
			t.Fatalf("%s: unexpected defaults: %+v", tc.name, got)
		}
	}
}

func TestParseCSVDropsMalformedRows(t *testing.T) {
	in := "Date,Amount,Category,Account\n" +
		"not-a-date,100,Salary,a\n" +
		"2025-01-05,not-a-number,Salary,a\n" +
		"2025-01-06,100,Salary,a\n"
	res, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Transactions) != 1 || res.Dropped != 2 {
		t.Fatalf("expected 1 kept and 2 dropped, got %+v", res)
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Amount,Category\n100,Salary\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	_, err = ParseCSV(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"100", 100, true},
		{"-600.50", -600.50, true},
		{"$1,234.56", 1234.56, true},
		{"-$1,234.56", -1234.56, true},
		{" 2.50 ", 2.50, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	in := "Date,Amount,Category,Account\n2025-01-05,2000.00,Salary,Checking\n"
	res, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, res.Transactions); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back.Transactions) != 1 || back.Transactions[0] != res.Transactions[0] {
		t.Fatalf("round trip mismatch: %+v vs %+v", back.Transactions, res.Transactions)
	}
}
