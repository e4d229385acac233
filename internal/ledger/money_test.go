package ledger_test

import (
	"math"
	"testing"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"whole", 50, "50.00"},
		{"cents", 1250.75, "1250.75"},
		{"binary float at the cent boundary", 0.1 + 0.2, "0.30"},
		{"rounds sub-cent noise up", 10.006, "10.01"},
		{"rounds sub-cent noise down", 10.004, "10.00"},
		{"negative rounds away from zero", -10.006, "-10.01"},
		{"zero", 0, "0.00"},
		{"negative", -59.99, "-59.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.MoneyString(ledger.MoneyFromFloat(tt.in))
			if got != tt.want {
				t.Errorf("MoneyFromFloat(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyFromFloatRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		in   float64
	}{
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"beyond magnitude cap", 1e18},
		{"beyond negative magnitude cap", -1e18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.MoneyFromFloat(tt.in); got != nil {
				t.Errorf("MoneyFromFloat(%v) = %s, want nil", tt.in, got.FloatString(2))
			}
		})
	}
}

func TestMoneyFromString(t *testing.T) {
	r, err := ledger.MoneyFromString("8300.00")
	if err != nil {
		t.Fatalf("MoneyFromString: %v", err)
	}
	if ledger.MoneyString(r) != "8300.00" {
		t.Errorf("round trip = %s, want 8300.00", ledger.MoneyString(r))
	}

	if _, err := ledger.MoneyFromString("not money"); err == nil {
		t.Error("MoneyFromString accepted garbage input")
	}
}

func TestMoneyStringNil(t *testing.T) {
	if got := ledger.MoneyString(nil); got != "0.00" {
		t.Errorf("MoneyString(nil) = %s, want 0.00", got)
	}
	if got := ledger.MoneyFloat(nil); got != 0 {
		t.Errorf("MoneyFloat(nil) = %v, want 0", got)
	}
}

func TestIsPositive(t *testing.T) {
	if !ledger.IsPositive(ledger.MoneyFromFloat(0.01)) {
		t.Error("one cent should be positive")
	}
	if ledger.IsPositive(ledger.MoneyFromFloat(0)) {
		t.Error("zero should not be positive")
	}
	if ledger.IsPositive(ledger.MoneyFromFloat(-5)) {
		t.Error("negative should not be positive")
	}
	if ledger.IsPositive(nil) {
		t.Error("nil should not be positive")
	}
}
