package units

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"m", Metre},
		{"", Metre},
		{" MM ", Millimetre},
		{"cm", Centimetre},
		{"in", Inch},
		{"feet", Foot},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	if _, err := Parse("furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestConversions(t *testing.T) {
	if got := Millimetre.Area(); math.Abs(got-1e-6) > 1e-21 {
		t.Errorf("mm^2 = %v m^2", got)
	}
	if got := Millimetre.Inverse(); math.Abs(got-1000) > 1e-9 {
		t.Errorf("1/mm = %v 1/m", got)
	}
	if got := Metre.Metres(5); got != 5 {
		t.Errorf("5 m = %v m", got)
	}
	if got := Millimetre.String(); got != "mm" {
		t.Errorf("String() = %q", got)
	}
	if got := Length(2).String(); got != "2m" {
		t.Errorf("String() = %q", got)
	}
}
