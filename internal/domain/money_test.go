package domain

import (
	"encoding/json"
	"testing"
)

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1599, "15.99"},
		{4497, "44.97"},
		{-997, "-9.97"},
		{-5, "-0.05"},
		{100000, "1000.00"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Money(%d).String() = %q, want %q", int64(tc.in), got, tc.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"15.99", 1599, false},
		{"15.9", 1590, false},
		{"15", 1500, false},
		{"0.05", 5, false},
		{"-9.97", -997, false},
		{"+2.50", 250, false},
		{"15.", 1500, false},
		{"15.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMoney(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoney(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", tc.in, int64(got), int64(tc.want))
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: 4497})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"amount":44.97}` {
		t.Fatalf("marshal = %s, want {\"amount\":44.97}", out)
	}

	var fromNumber payload
	if err := json.Unmarshal([]byte(`{"amount":44.97}`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.Amount != 4497 {
		t.Fatalf("from number = %d, want 4497", int64(fromNumber.Amount))
	}

	var fromString payload
	if err := json.Unmarshal([]byte(`{"amount":"44.97"}`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString.Amount != 4497 {
		t.Fatalf("from string = %d, want 4497", int64(fromString.Amount))
	}

	var negative payload
	if err := json.Unmarshal([]byte(`{"amount":-9.97}`), &negative); err != nil {
		t.Fatalf("unmarshal negative: %v", err)
	}
	if negative.Amount != -997 {
		t.Fatalf("negative = %d, want -997", int64(negative.Amount))
	}

	var tooPrecise payload
	if err := json.Unmarshal([]byte(`{"amount":1.999}`), &tooPrecise); err == nil {
		t.Fatal("expected error for more than two fraction digits")
	}
}
