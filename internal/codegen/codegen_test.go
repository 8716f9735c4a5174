package codegen_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/codegen"
	"github.com/regionc/regionc/internal/lexer"
	"github.com/regionc/regionc/internal/optimize"
	"github.com/regionc/regionc/internal/parser"
)

func compile(t *testing.T, src string) *ast.Region {
	t.Helper()
	lx := lexer.New("test.region", src)
	tokens := lx.All()
	if errs := lx.Errors(); len(errs) != 0 {
		t.Fatalf("lex errors: %v", errs)
	}
	region, err := parser.ParseRegion(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if errs := optimize.NewPipeline("test.region", src).Run(region); len(errs) != 0 {
		t.Fatalf("optimizer errors: %v", errs)
	}
	return region
}

func TestGenerateArithmeticFunction(t *testing.T) {
	region := compile(t, `region arith {
  fn double(n) {
    return n + n * 2;
  }
}`)

	snaps.MatchSnapshot(t, codegen.Generate(region))
}

func TestGenerateBufferLifecycle(t *testing.T) {
	region := compile(t, `region buffers {
  fn roundtrip(n) {
    let buf = allocate(n);
    let view = buf.borrow(1, 0);
    free(buf);
    return view;
  }
}`)

	snaps.MatchSnapshot(t, codegen.Generate(region))
}

func TestGenerateControlFlow(t *testing.T) {
	region := compile(t, `region loops {
  fn sum_to(n) {
    let total = 0;
    for (let i = 0; i < n; i = i + 1) {
      if i > 5 {
        total = total + i;
      } else {
        total = total + 1;
      };
    };
    return total;
  }
}`)

	snaps.MatchSnapshot(t, codegen.Generate(region))
}

func TestGenerateMethodCallAndAppend(t *testing.T) {
	region := compile(t, `region lists {
  fn grow(xs) {
    return append(xs, xs);
  }

  fn describe(xs) {
    return xs.length();
  }
}`)

	snaps.MatchSnapshot(t, codegen.Generate(region))
}

func TestGenerateRefusesNonEmptyArrayLiteral(t *testing.T) {
	region := compile(t, `region refuse {
  fn bad(x) {
    return 1;
  }
}`)
	fn := region.Functions()[0]
	fn.Body[0] = &ast.ReturnStatement{
		Value: &ast.ArrayExpr{Elems: []ast.Expr{&ast.NumberExpr{Value: 1}}},
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a code-generator refusal panic for a non-empty array literal")
		}
	}()
	codegen.Generate(region)
}

func TestPackageNameIsDeterministicModuloID(t *testing.T) {
	region := compile(t, `region MyRegion {
  fn noop(x) {
    return 0;
  }
}`)

	out := codegen.Generate(region)
	for _, marker := range []string{"package myregion", "func Register(h host.Host)", "func entry_noop("} {
		if !strings.Contains(out, marker) {
			t.Fatalf("generated output missing %q:\n%s", marker, out)
		}
	}
}
