package gentests

import (
	"strings"
	"testing"
	"time"

	"github.com/vic/lcc/pkg/lambda"
)

// MaxSteps bounds every golden reduction.
const MaxSteps = 100000

func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()

	expectedTerm, err := lambda.Parse(strings.TrimSpace(outputStr))
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}
	term, err := lambda.Parse(inputStr)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	r := lambda.NewReducer()
	r.MaxSteps = MaxSteps
	r.Check = true
	r.EnableTrace(8)

	start := time.Now()
	actualTerm, err := r.Normalize(term, nil)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("%s: reduction failed: %v\nlast reductions:\n%s", testName, err, lambda.FormatTrace(r.TraceSnapshot()))
	}
	if !lambda.IsNormal(actualTerm) {
		t.Errorf("%s: result is not in normal form: %s", testName, actualTerm)
	}

	// Names and identifiers differ between the two parses, so compare the
	// nameless forms.
	if !lambda.AlphaEqual(actualTerm, expectedTerm) {
		t.Errorf("Mismatch in %s:\nInput: %s\nExpected: %s\nActual:   %s",
			testName, strings.TrimSpace(inputStr), lambda.DeBruijn(expectedTerm), lambda.DeBruijn(actualTerm))
	}

	stats := r.Stats()
	t.Logf("%s: %d reductions in %v (beta=%d erase=%d dup=%d, %d nodes copied)",
		testName, stats.TotalReductions, elapsed, stats.Beta, stats.Erasures, stats.Duplications, stats.NodesCopied)
}
