package formula_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/formula"
)

func FuzzCalc(f *testing.F) {
	f.Add("$x + $y", 1.5, -2.0)
	f.Add("sqrt(pow($a, 2) + pow($b, 2))", 3.0, 4.0)
	f.Add("-2 ** -(3) ^ max(1, 2, $z)", 0.0, 0.0)
	f.Add("((1)", 0.0, 0.0)
	f.Fuzz(func(t *testing.T, s string, x, y float64) {
		r, err := formula.Calc(s, x, y)
		if err != nil {
			var ferr *formula.Error
			if !errors.As(err, &ferr) {
				t.Fatalf("%q gave non-*Error %#v", s, err)
			}
			return
		}
		if math.IsInf(r, 0) || math.IsNaN(r) {
			t.Fatalf("%q gave non-finite result %g without error", s, r)
		}
	})
}

func FuzzTree(f *testing.F) {
	f.Add("x")
	f.Add("min(1,2,3)")
	f.Add("2 ** 3 ^ -4")
	f.Fuzz(func(t *testing.T, s string) {
		formula.Tree(s, 1, 2, 3)
	})
}
