package domain_test

import (
	"errors"
	"testing"

	"github.com/iho/ubiledger/internal/domain"
)

func TestBalance_Debit(t *testing.T) {
	b := &domain.Balance{Account: "alice", Symbol: "XDL", Amount: 1000}

	if err := b.Debit(400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Amount != 600 {
		t.Errorf("amount = %d, want 600", b.Amount)
	}

	if err := b.Debit(601); !errors.Is(err, domain.ErrOverdrawnBalance) {
		t.Errorf("error = %v, want ErrOverdrawnBalance", err)
	}
	if b.Amount != 600 {
		t.Errorf("failed debit mutated the balance: %d", b.Amount)
	}

	if err := b.Debit(600); err != nil {
		t.Fatalf("debit to zero failed: %v", err)
	}
	if b.Amount != 0 {
		t.Errorf("amount = %d, want 0", b.Amount)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 10000, false},
		{"1.0000", 10000, false},
		{"12.3456", 123456, false},
		{"0.0001", 1, false},
		{"-3.5", -35000, false},
		{"0.00001", 0, true}, // beyond the symbol precision
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := domain.ParseAmount(tt.in)

		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseAmount(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{10000, "1.0000"},
		{123456, "12.3456"},
		{1, "0.0001"},
		{0, "0.0000"},
		{-35000, "-3.5000"},
	}

	for _, tt := range tests {
		if got := domain.FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAsset_Validate(t *testing.T) {
	ok := domain.NewAsset(5, "XDL")
	if err := ok.Validate(); err != nil {
		t.Errorf("valid asset rejected: %v", err)
	}
	if ok.Amount != 5*domain.PrecisionMultiplier {
		t.Errorf("NewAsset scaled to %d", ok.Amount)
	}

	if err := (domain.Asset{Amount: 0, Symbol: "XDL"}).Validate(); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("zero amount: %v", err)
	}

	if err := (domain.Asset{Amount: 100, Symbol: "xdl"}).Validate(); !errors.Is(err, domain.ErrInvalidSymbol) {
		t.Errorf("lowercase symbol: %v", err)
	}
}
