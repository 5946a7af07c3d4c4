package fantasy

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMillions(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "100", want: 1000},
		{raw: "99.5", want: 995},
		{raw: "99.95", wantErr: true},
		{raw: "0.05", wantErr: true},
		{raw: "5.10", want: 51},
		{raw: " 83.0 ", want: 830},
		{raw: "0", wantErr: true},
		{raw: "-5", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMillions(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput for %q, got %v", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseMillions(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPriceToMillions(t *testing.T) {
	if got := PriceToMillions(995); !got.Equal(decimal.RequireFromString("99.5")) {
		t.Fatalf("expected 99.5, got %s", got)
	}
	if got := PriceToMillions(0).String(); got != "0" {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestPriceFromMillions_RejectsSubTenthPrices(t *testing.T) {
	for _, raw := range []string{"5.05", "4.99", "0.01"} {
		if _, err := PriceFromMillions(decimal.RequireFromString(raw)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("PriceFromMillions(%s): expected ErrInvalidInput, got %v", raw, err)
		}
	}
}
