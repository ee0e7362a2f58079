package entity

import "testing"

func TestSetPriceFromDecimal(t *testing.T) {
	cases := []struct {
		rupees float64
		paise  int64
	}{
		{0, 0},
		{2.00, 200},
		{0.07, 7},
		{4.49, 449},
		{19.99, 1999},
	}

	for _, tc := range cases {
		var s Service
		s.SetPriceFromDecimal(tc.rupees)
		if s.Price != tc.paise {
			t.Errorf("SetPriceFromDecimal(%v) = %d paise, want %d", tc.rupees, s.Price, tc.paise)
		}
	}
}
