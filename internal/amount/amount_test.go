package amount

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "simple value", input: "300", want: 300},
		{name: "zero", input: "0", want: 0},
		{name: "max int64", input: "9223372036854775807", want: math.MaxInt64},
		{name: "empty string", input: "", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "decimal point", input: "1.5", wantErr: true},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "beyond int64", input: "9223372036854775808", wantErr: true},
		{name: "hex prefix", input: "0x10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	t.Run("plain addition", func(t *testing.T) {
		got, err := Amount(100).Add(200)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got != 300 {
			t.Errorf("100 + 200 = %v, want 300", got)
		}
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		if _, err := Amount(math.MaxInt64).Add(1); err != ErrOverflow {
			t.Errorf("expected ErrOverflow, got %v", err)
		}
	})
}

func TestSub(t *testing.T) {
	t.Run("plain subtraction", func(t *testing.T) {
		got, err := Amount(300).Sub(100)
		if err != nil {
			t.Fatalf("Sub failed: %v", err)
		}
		if got != 200 {
			t.Errorf("300 - 100 = %v, want 200", got)
		}
	})

	t.Run("underflow is rejected", func(t *testing.T) {
		if _, err := Amount(math.MinInt64).Sub(1); err != ErrOverflow {
			t.Errorf("expected ErrOverflow, got %v", err)
		}
	})
}

func TestMul(t *testing.T) {
	t.Run("plain multiplication", func(t *testing.T) {
		got, err := Amount(100).Mul(3)
		if err != nil {
			t.Fatalf("Mul failed: %v", err)
		}
		if got != 300 {
			t.Errorf("100 * 3 = %v, want 300", got)
		}
	})

	t.Run("zero factor", func(t *testing.T) {
		got, err := Amount(100).Mul(0)
		if err != nil || got != 0 {
			t.Errorf("100 * 0 = %v (err %v), want 0", got, err)
		}
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		if _, err := Amount(math.MaxInt64).Mul(2); err != ErrOverflow {
			t.Errorf("expected ErrOverflow, got %v", err)
		}
	})
}

func TestDiv(t *testing.T) {
	t.Run("exact division", func(t *testing.T) {
		got, exact := Amount(300).Div(3)
		if !exact || got != 100 {
			t.Errorf("300 / 3 = %v (exact %v), want 100 exact", got, exact)
		}
	})

	t.Run("inexact division", func(t *testing.T) {
		if _, exact := Amount(100).Div(3); exact {
			t.Error("100 / 3 reported as exact")
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		if _, exact := Amount(100).Div(0); exact {
			t.Error("division by zero reported as exact")
		}
	})
}

func TestString(t *testing.T) {
	if got := Amount(12345).String(); got != "12345" {
		t.Errorf("String() = %q, want %q", got, "12345")
	}
}
