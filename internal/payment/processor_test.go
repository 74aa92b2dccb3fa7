package payment

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{24.5, 2450},
		{49.99, 4999},
		// Float representation of 3 * 19.99 is 59.970000000000006; rounding
		// must absorb that.
		{59.970000000000006, 5997},
		{0.005, 1},
	}

	for _, tc := range cases {
		if got := MinorUnits(tc.amount); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
