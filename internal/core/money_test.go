package core

import "testing"

func TestParseDecimalToPaisa(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"80", 8000, true},
		{"0", 0, true}, // zero sale on expense rows is valid
		{"", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToPaisa(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToPaisa(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToPaisa(%q) expected error", tc.in)
		}
	}
}

func TestParseSignedToPaisa(t *testing.T) {
	got, err := ParseSignedToPaisa("-170")
	if err != nil || got != -17000 {
		t.Fatalf("ParseSignedToPaisa(-170) = %d, %v", got, err)
	}
	got, err = ParseSignedToPaisa("30.50")
	if err != nil || got != 3050 {
		t.Fatalf("ParseSignedToPaisa(30.50) = %d, %v", got, err)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		paisa int64
		want  string
	}{
		{8000, "80"},
		{3050, "30.50"},
		{-17000, "-170"},
		{5, "0.05"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := (Money{Paisa: tc.paisa}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.paisa, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Paisa: 8000}
	b := Money{Paisa: 5000}
	if a.Sub(b).Paisa != 3000 {
		t.Fatalf("Sub = %d", a.Sub(b).Paisa)
	}
	if a.Add(b).Paisa != 13000 {
		t.Fatalf("Add = %d", a.Add(b).Paisa)
	}
	if (Money{Paisa: 1250}).Rupees() != 12.5 {
		t.Fatalf("Rupees = %v", (Money{Paisa: 1250}).Rupees())
	}
}
