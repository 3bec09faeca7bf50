// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"math"
	"testing"
)

// TestNewAmount ensures float-to-amount conversion rounds correctly and
// rejects non-finite input.
func TestNewAmount(t *testing.T) {
	tests := []struct {
		name  string
		f     float64
		want  Amount
		valid bool
	}{
		{"zero", 0, 0, true},
		{"one coin", 1, 1e8, true},
		{"fraction", 0.0003, 30000, true},
		// 0.000000015 is not exactly representable as a float64; the
		// nearest value is 1.4999999999999998e-8, which rounds down.
		{"inexact half rounds down", 0.000000015, 1, true},
		// 2.5e-8 is exact, so the half-away-from-zero rule applies.
		{"exact half rounds up", 0.000000025, 3, true},
		{"negative", -1, -1e8, true},
		{"nan", math.NaN(), 0, false},
		{"+inf", math.Inf(1), 0, false},
		{"-inf", math.Inf(-1), 0, false},
	}

	for _, test := range tests {
		got, err := NewAmount(test.f)
		if test.valid {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
				continue
			}
			if got != test.want {
				t.Errorf("%s: got %d, want %d", test.name, got, test.want)
			}
		} else if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

// TestFormatSatoshis checks display formatting against the reference
// vectors, including the signed-difference form.
func TestFormatSatoshis(t *testing.T) {
	tests := []struct {
		v        Amount
		diff     bool
		numZeros int
		want     string
	}{
		{1234, false, 0, "0.00001234"},
		{1234, true, 0, "+0.00001234"},
		{-1234, true, 0, "-0.00001234"},
		{0, false, 2, "0.00"},
		{1e8, false, 0, "1."},
		{1e8, false, 2, "1.00"},
		{150000000, false, 0, "1.5"},
		{-50000000, false, 0, "-0.5"},
	}

	for _, test := range tests {
		got := FormatSatoshis(test.v, test.diff, test.numZeros)
		if got != test.want {
			t.Errorf("FormatSatoshis(%d, %v, %d): got %q, want %q",
				test.v, test.diff, test.numZeros, got, test.want)
		}
	}
}

// TestAmountUnitConversions spot checks unit conversion and formatting.
func TestAmountUnitConversions(t *testing.T) {
	amt := Amount(44433322211100)

	if got := amt.ToCoin(); got != 444333.22211100 {
		t.Errorf("ToCoin: got %v", got)
	}
	if got := amt.ToUnit(AmountSatoshi); got != 44433322211100 {
		t.Errorf("ToUnit(satoshi): got %v", got)
	}
	if got := amt.Format(AmountCoin); got != "444333.222111 XGOX" {
		t.Errorf("Format: got %q", got)
	}
}
