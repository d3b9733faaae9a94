package parse_test

import (
	"fmt"

	"github.com/matzehuels/regexrail/pkg/parse"
)

func ExampleParse() {
	nodes, err := parse.Parse(`^(\d+)-abc*$`)
	if err != nil {
		panic(err)
	}
	for _, n := range nodes {
		fmt.Println(n)
	}
	// Output:
	// assert AssertBegin
	// group #1
	// exact "-ab"
	// exact "c" {0,}
	// assert AssertEnd
}

func ExampleParse_error() {
	_, err := parse.Parse("a(b")
	fmt.Println(err)
	// Output: INVALID_PATTERN: invalid pattern: unterminated group at position 1
}
