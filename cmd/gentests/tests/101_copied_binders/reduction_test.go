package gentests

import _ "embed"
import "testing"
import "github.com/vic/lcc/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

// Both copies of \z end up nested inside each other. If they shared one
// identifier the inner binder would capture the outer z.
func Test_101_copied_binders_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "101_copied_binders", input, output)
}
