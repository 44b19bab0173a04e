package models

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		paid, remaining float64
		want            PaymentStatus
	}{
		{3420, 0, StatusPaid},
		{0, 930, StatusUnpaid},
		{500, 430, StatusPartial},
		{1000, -100, StatusPaid},
		{0, 0, StatusPaid},
		{0, -5, StatusPaid},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.paid, tc.remaining); got != tc.want {
			t.Fatalf("DeriveStatus(%v, %v): want=%s got=%s", tc.paid, tc.remaining, tc.want, got)
		}
	}
}

func TestFormatJobcardNo(t *testing.T) {
	cases := map[int64]string{
		1:      "JC-00001",
		7:      "JC-00007",
		12345:  "JC-12345",
		123456: "JC-123456",
	}
	for seq, want := range cases {
		if got := FormatJobcardNo(seq); got != want {
			t.Fatalf("FormatJobcardNo(%d): want=%q got=%q", seq, want, got)
		}
	}
}

func TestNormalizeUppercasesIdentifyingFields(t *testing.T) {
	j := &Jobcard{
		CustomerName: "  umang patel ",
		City:         "palaj",
		RegNo:        "gj09dl4914",
		ModelName:    "ct100",
		MechanicName: " Ramesh ",
		Remarks:      "check brakes",
	}
	j.Normalize()

	if j.CustomerName != "UMANG PATEL" || j.City != "PALAJ" || j.RegNo != "GJ09DL4914" || j.ModelName != "CT100" {
		t.Fatalf("identifying fields not upper-cased: %+v", j)
	}
	if j.MechanicName != "Ramesh" || j.Remarks != "check brakes" {
		t.Fatalf("free text changed beyond trimming: mechanic=%q remarks=%q", j.MechanicName, j.Remarks)
	}
	if j.Services == nil || j.Parts == nil || j.Labour == nil {
		t.Fatalf("line item lists should be non-nil after Normalize")
	}
}

func TestFilterMatches(t *testing.T) {
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	j := &Jobcard{JobcardNo: "JC-00003", CustomerName: "UMANG PATEL", RegNo: "GJ09DL4914", Date: day, Status: StatusPaid}

	from := day.Add(-time.Hour)
	to := day
	cases := []struct {
		name   string
		filter JobcardFilter
		want   bool
	}{
		{"empty", JobcardFilter{}, true},
		{"substring", JobcardFilter{CustomerName: "pat"}, true},
		{"and", JobcardFilter{CustomerName: "pat", RegNo: "xx"}, false},
		{"inclusive upper bound", JobcardFilter{From: &from, To: &to}, true},
		{"zero width window", JobcardFilter{From: &to, To: &to, RegNo: "gj09"}, true},
		{"after window", JobcardFilter{To: &from}, false},
		{"status", JobcardFilter{Status: "unpaid"}, false},
		{"status case-insensitive", JobcardFilter{Status: "paid"}, true},
		{"status is not a substring", JobcardFilter{Status: "aid"}, false},
		{"whitespace only ignored", JobcardFilter{City: "   "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(j); got != tc.want {
				t.Fatalf("Matches: want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestNewestFirst(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	a := &Jobcard{SeqID: 5, Date: day}
	b := &Jobcard{SeqID: 6, Date: day}
	c := &Jobcard{SeqID: 1, Date: day.Add(time.Hour)}

	if NewestFirst(b, a) >= 0 {
		t.Fatalf("same date: higher sequence should come first")
	}
	if NewestFirst(c, b) >= 0 {
		t.Fatalf("later date should come first regardless of sequence")
	}
}
