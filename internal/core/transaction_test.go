package core

import "testing"

func TestNormalizeLegacySign(t *testing.T) {
	cases := []struct {
		in         Transaction
		wantType   TxType
		wantAmount int64
	}{
		{Transaction{Amount: 50000}, TypeIncome, 50000},
		{Transaction{Amount: -7000}, TypeExpense, 7000},
		{Transaction{Amount: 0}, TypeIncome, 0},
		{Transaction{Amount: -300, Type: TypeIncome}, TypeIncome, 300},
		{Transaction{Amount: 1200, Type: TypeExpense}, TypeExpense, 1200},
	}
	for i, tc := range cases {
		got := Normalize(tc.in)
		if got.Type != tc.wantType {
			t.Errorf("case %d: type = %q, want %q", i, got.Type, tc.wantType)
		}
		if got.Amount != tc.wantAmount {
			t.Errorf("case %d: amount = %d, want %d", i, got.Amount, tc.wantAmount)
		}
	}
}

func TestNormalizeCanonicalIsIdentity(t *testing.T) {
	in := Transaction{
		ID:            "1",
		Date:          "2023. 08. 17",
		Amount:        50000,
		Description:   "급여",
		PaymentMethod: "현금",
		Category:      "월급",
		Type:          TypeIncome,
		CreatedAt:     "2023-08-17T09:00:00",
	}
	if got := Normalize(in); got != in {
		t.Fatalf("Normalize changed a canonical record: %+v", got)
	}
}

func TestDraftOfRoundTrip(t *testing.T) {
	tx := Transaction{
		ID:            "7",
		Date:          "2023. 08. 17",
		Amount:        7000,
		Description:   "점심",
		PaymentMethod: "현대카드",
		Category:      "식비",
		Type:          TypeExpense,
		CreatedAt:     "2023-08-17T12:00:00",
	}
	d := tx.DraftOf()
	if d.Date != tx.Date || d.Amount != tx.Amount || d.Description != tx.Description ||
		d.PaymentMethod != tx.PaymentMethod || d.Category != tx.Category || d.Type != tx.Type {
		t.Fatalf("DraftOf dropped a field: %+v", d)
	}
}

func TestValidLedgerDate(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"2023. 08. 17", true},
		{"2023. 12. 31", true},
		{"17-08-2023", false},
		{"2023.08.17", false},
		{"2023. 8. 17", false},
		{"2023. 13. 01", false},
		{"2023. 02. 30", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidLedgerDate(tc.s); got != tc.ok {
			t.Errorf("ValidLedgerDate(%q) = %v, want %v", tc.s, got, tc.ok)
		}
	}
}

func TestParseAndFormatLedgerDate(t *testing.T) {
	tm, err := ParseLedgerDate("2023. 08. 17")
	if err != nil {
		t.Fatalf("ParseLedgerDate: %v", err)
	}
	if tm.Year() != 2023 || int(tm.Month()) != 8 || tm.Day() != 17 {
		t.Fatalf("parsed %v, want 2023-08-17", tm)
	}
	if got := FormatLedgerDate(tm); got != "2023. 08. 17" {
		t.Fatalf("FormatLedgerDate = %q", got)
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey(2023, 8, 7); got != "2023-08-07" {
		t.Fatalf("DayKey = %q", got)
	}
}
