package formula_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/formula"
)

func Example() {
	hyp, _ := formula.Calc("sqrt(pow($base, 2) + pow($height, 2))", 3, 4)
	fmt.Println(hyp)
	twice, _ := formula.Calc("$a + $a", 5)
	fmt.Println(twice)
	neg, _ := formula.Calc("-2^2")
	fmt.Println(neg)

	// Output:
	// 5
	// 10
	// -4
}

func ExampleError() {
	_, err := formula.Calc("$total / $count", 10, 0)
	fmt.Println(err)
	fmt.Println(errors.Is(err, formula.DivisionByZero))

	// Output:
	// formula: column 8: division by zero
	// true
}

func ExampleTree() {
	s, _ := formula.Tree("1 + 2 * -$x ^ 2", 3)
	fmt.Println(s)

	// Output:
	// ([1] + [(2) * (-[(3) ^ (2)])])
}
