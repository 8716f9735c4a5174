package optimize_test

import (
	"strings"
	"testing"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/lexer"
	"github.com/regionc/regionc/internal/optimize"
	"github.com/regionc/regionc/internal/parser"
)

func mustOptimize(t *testing.T, src string) (*ast.Region, []string) {
	t.Helper()
	toks := lexer.New("test.rgn", src).All()
	region, err := parser.ParseRegion(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	pipeline := optimize.NewPipeline("test.rgn", src)
	diags := pipeline.Run(region)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return region, msgs
}

func fnString(t *testing.T, region *ast.Region, name string) string {
	t.Helper()
	for _, fn := range region.Functions() {
		if fn.Name == name {
			return fn.String()
		}
	}
	t.Fatalf("no function named %s", name)
	return ""
}

func TestAlgebraicSimplification(t *testing.T) {
	src := `region R {
  fn f(x) {
    let a = 1 + 0;
    blackbox(a);
    let a1 = a * 1;
    blackbox(a1);
    let b = 2 * 1;
    blackbox(b);
    let b1 = 0 + b;
    blackbox(b1);
  }
}`
	region, _ := mustOptimize(t, src)
	out := fnString(t, region, "f")

	if strings.Contains(out, "+ 0") || strings.Contains(out, "0 +") {
		t.Errorf("additive identity survived simplification: %s", out)
	}
	if strings.Contains(out, "* 1") || strings.Contains(out, "1 *") {
		t.Errorf("multiplicative identity survived simplification: %s", out)
	}
	if strings.Contains(out, "* 0") || strings.Contains(out, "0 *") {
		t.Errorf("zero product survived simplification: %s", out)
	}
	if strings.Count(out, "blackbox(") != 4 {
		t.Errorf("expected all four blackbox calls to survive, got: %s", out)
	}
}

func TestConstantFoldingAndUnreachable(t *testing.T) {
	src := `region R {
  fn f(x) {
    let z = 0;
    if z < 1 {
      return 0;
      blackbox(7);
    };
    return 1;
  }
}`
	region, _ := mustOptimize(t, src)
	out := fnString(t, region, "f")

	if strings.Contains(out, "blackbox(7)") {
		t.Errorf("statement after return survived unreachable-code elimination: %s", out)
	}
}

func TestCSERespectsReassignmentInvalidation(t *testing.T) {
	src := `region R {
  fn f(x) {
    let a = blackbox(1);
    let b = blackbox(2);
    let c = a + b;
    let d = c;
    blackbox(c);
    blackbox(d);
    let e = d;
    a = 9;
    let fv = a + b;
    blackbox(e);
    blackbox(fv);
  }
}`
	region, _ := mustOptimize(t, src)
	out := fnString(t, region, "f")

	if !strings.Contains(out, "blackbox(c)") {
		t.Errorf("d was not replaced by c before the reassignment: %s", out)
	}

	idx := strings.Index(out, "a = 9")
	if idx < 0 {
		t.Fatalf("reassignment of a missing from output: %s", out)
	}
	after := out[idx:]
	if strings.Contains(after, "= c") {
		t.Errorf("second a + b was incorrectly replaced by c after a's reassignment: %s", out)
	}
}

func TestLICMHoistsOnlyTheInvariantLoop(t *testing.T) {
	src := `region R {
  fn f(x) {
    let a = blackbox(1);
    let b = blackbox(2);
    let n = x;
    for (let i = 0; i < n; i = i + 1) {
      blackbox(a * b);
    };
    for (let j = 0; j < n; j = j + 1) {
      a = a + 1;
      blackbox(a * b);
    };
  }
}`
	region, _ := mustOptimize(t, src)
	out := fnString(t, region, "f")

	if !strings.Contains(out, "__temp_0 = (a * b)") {
		t.Errorf("expected a*b hoisted before the first loop as __temp_0: %s", out)
	}

	firstFor := strings.Index(out, "for (")
	secondFor := strings.Index(out[firstFor+1:], "for (")
	if secondFor < 0 {
		t.Fatalf("expected two for loops in output: %s", out)
	}
	secondFor += firstFor + 1
	if strings.Contains(out[secondFor:], "__temp_") {
		t.Errorf("second loop should not hoist a*b since a is modified inside it: %s", out)
	}
}

func TestUseDefReportsUndeclaredVariable(t *testing.T) {
	src := `region R {
  fn f(x) {
    let y = x + z;
    return y;
  }
}`
	_, diags := mustOptimize(t, src)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0], "z") {
		t.Errorf("diagnostic should name the undeclared variable z, got: %s", diags[0])
	}
}

func TestUseDefRewritesUnusedLet(t *testing.T) {
	src := `region R {
  fn f(x) {
    let unused = blackbox(x);
    return x;
  }
}`
	region, diags := mustOptimize(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	out := fnString(t, region, "f")
	if strings.Contains(out, "let unused") {
		t.Errorf("unused let should have been rewritten to a bare expression statement: %s", out)
	}
	if !strings.Contains(out, "blackbox(x)") {
		t.Errorf("rewritten statement should keep the call's side effect: %s", out)
	}
}
