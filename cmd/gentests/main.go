package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/lcc/pkg/lambda"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/lcc/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "%s", input, output)
}
`

// Terms must be closed, so arguments that would be free variables are
// bound by outer lambdas.
var tests = []TestCase{
	// Identity
	{"001_id", `(\x.x)`, `(\y.y)`},
	{"002_id_id", `((\x.x) (\y.y))`, `(\z.z)`},

	// K Combinator (Erasure)
	{"003_k_1", `(\a.(\b.(((\x.(\y.x)) a) b)))`, `(\a.(\b.a))`},
	{"004_k_2", `(\a.(\b.(((\x.(\y.y)) a) b)))`, `(\a.(\b.b))`},
	{"005_erase_complex", `(\a.(\b.(((\x.(\y.x)) a) ((\z.z) b))))`, `(\a.(\b.a))`},

	// S Combinator (Sharing)
	{"006_s_1", `(\e.((((\x.(\y.(\z.((x z) (y z))))) (\a.(\b.a))) (\c.(\d.c))) e))`, `(\e.e)`},
	{"007_s_2", `(\e.((((\x.(\y.(\z.((x z) (y z))))) (\a.(\b.b))) (\c.(\d.c))) e))`, `(\e.(\d.e))`},

	// Church Numerals
	{"010_zero", `(\f.(\x.(((\g.(\y.y)) f) x)))`, `(\f.(\x.x))`},
	{"011_one", `(\f.(\x.(((\g.(\y.(g y))) f) x)))`, `(\f.(\x.(f x)))`},
	{"012_two", `(\f.(\x.(((\g.(\y.(g (g y)))) f) x)))`, `(\f.(\x.(f (f x))))`},
	{"013_succ_0", `(\F.(\X.((((\n.(\f.(\x.(f ((n f) x))))) (\f.(\x.x))) F) X)))`, `(\F.(\X.(F X)))`},
	{"014_succ_1", `(\F.(\X.((((\n.(\f.(\x.(f ((n f) x))))) (\f.(\x.(f x)))) F) X)))`, `(\F.(\X.(F (F X))))`},
	{"015_add_1_1", `(\F.(\X.(((((\m.(\n.(\f.(\x.((m f) ((n f) x)))))) (\f.(\x.(f x)))) (\f.(\x.(f x)))) F) X)))`, `(\F.(\X.(F (F X))))`},
	{"016_mul_2_2", `(\F.(\X.(((((\m.(\n.(\f.(m (n f))))) (\f.(\x.(f (f x))))) (\f.(\x.(f (f x))))) F) X)))`, `(\F.(\X.(F (F (F (F X))))))`},

	// Logic
	{"020_true", `(\a.(\b.(((\x.(\y.x)) a) b)))`, `(\a.(\b.a))`},
	{"021_false", `(\a.(\b.(((\x.(\y.y)) a) b)))`, `(\a.(\b.b))`},
	{"022_not_true", `(\a.(\b.((((\p.((p (\x.(\y.y))) (\x.(\y.x)))) (\x.(\y.x))) a) b)))`, `(\a.(\b.b))`},
	{"023_not_false", `(\a.(\b.((((\p.((p (\x.(\y.y))) (\x.(\y.x)))) (\x.(\y.y))) a) b)))`, `(\a.(\b.a))`},
	{"024_and_true_true", `(\a.(\b.(((((\p.(\q.((p q) p))) (\x.(\y.x))) (\x.(\y.x))) a) b)))`, `(\a.(\b.a))`},
	{"025_and_true_false", `(\a.(\b.(((((\p.(\q.((p q) p))) (\x.(\y.x))) (\x.(\y.y))) a) b)))`, `(\a.(\b.b))`},

	// Pairs
	{"030_pair_fst", `(\a.(\b.((\p.(p (\x.(\y.x)))) (((\x.(\y.(\f.((f x) y)))) a) b))))`, `(\a.(\b.a))`},
	{"031_pair_snd", `(\a.(\b.((\p.(p (\x.(\y.y)))) (((\x.(\y.(\f.((f x) y)))) a) b))))`, `(\a.(\b.b))`},

	// Complex / Stress
	{"051_share_app", `(\z.((\f.(f (f z))) (\y.y)))`, `(\z.z)`},
	{"060_pow_2_3", `(\F.(\X.(((((\b.(\e.(e b))) (\f.(\x.(f (f x))))) (\f.(\x.(f (f (f x)))))) F) X)))`, `(\F.(\X.(F (F (F (F (F (F (F (F X))))))))))`},

	// Duplication
	{"070_share_complex", `(\a.((\x.(x (x a))) (\y.y)))`, `(\a.a)`},
	{"071_erase_shared", `(\a.(\b.(((\x.(\y.y)) ((\z.z) a)) b)))`, `(\a.(\b.b))`},
	{"072_self_app", `((\x.(x x)) (\y.y))`, `(\y.y)`},

	// Nested Lambdas
	{"080_nested_1", `(\x.(\y.(\z.((x y) z))))`, `(\x.(\y.(\z.((x y) z))))`},
	{"081_nested_app", `(\a.(\b.(((\x.(\y.(x y))) a) b)))`, `(\a.(\b.(a b)))`},

	// Shadowing
	{"090_shadow", `(\a.(\b.(((\x.(\x.x)) a) b)))`, `(\a.(\b.b))`},
	{"091_shadow_outer", `(\a.((\x.((\x.x) x)) a))`, `(\a.a)`},

	// Mixed
	{"100_mixed_1", `(\a.((\x.x) ((\y.y) a)))`, `(\a.a)`},
}

func main() {
	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	generated := 0
	for _, tc := range tests {
		// Both sides must parse.
		if _, err := lambda.Parse(tc.Input); err != nil {
			fmt.Printf("Error parsing input for %s: %v\n", tc.Name, err)
			continue
		}
		if _, err := lambda.Parse(tc.Output); err != nil {
			fmt.Printf("Error parsing output for %s: %v\n", tc.Name, err)
			continue
		}

		dir := filepath.Join(baseDir, tc.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Error creating %s: %v\n", dir, err)
			continue
		}
		testGo := fmt.Sprintf(testTemplate, tc.Name, tc.Name)
		files := map[string]string{
			"input.lam":         tc.Input + "\n",
			"output.lam":        tc.Output + "\n",
			"reduction_test.go": testGo,
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
				fmt.Printf("Error writing %s: %v\n", name, err)
			}
		}
		generated++
	}

	fmt.Printf("Generated %d tests\n", generated)
}
