package parser

import (
	"testing"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Region {
	t.Helper()
	l := lexer.New("t.rgn", src)
	toks := l.All()
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexer errors: %v", l.Errors())
	}
	region, err := ParseRegion(toks)
	if err != nil {
		t.Fatalf("ParseRegion() error = %v", err)
	}
	return region
}

func TestParseSurfaceExample(t *testing.T) {
	src := `region DataManagement {
    fn processStream(streamSize) {
        let blocksize = 10;
        let streamPtr = allocate(streamSize);
        let blocks = [];
        let i = 0;
        for (i = 0; i < streamSize; i = i + blocksize) {
            let blockPtr = streamPtr.borrow(blocksize, i);
            blocks.append(blockPtr);
        };
        return blocks;
    };
}`
	region := mustParse(t, src)
	if region.Name != "DataManagement" {
		t.Fatalf("region name = %q", region.Name)
	}
	fns := region.Functions()
	if len(fns) != 1 {
		t.Fatalf("expected 1 function, got %d", len(fns))
	}
	fn := fns[0]
	if fn.Name != "processStream" {
		t.Fatalf("function name = %q", fn.Name)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "streamSize" {
		t.Fatalf("params = %+v", fn.Params)
	}
	if len(fn.Body) != 6 {
		t.Fatalf("expected 6 statements in body, got %d:\n%s", len(fn.Body), fn.String())
	}

	letBlocks, ok := fn.Body[2].(*ast.LetStatement)
	if !ok || letBlocks.Name != "blocks" {
		t.Fatalf("statement 2 = %#v, want let blocks = []", fn.Body[2])
	}
	if _, ok := letBlocks.Value.(*ast.ArrayExpr); !ok {
		t.Fatalf("blocks initializer = %#v, want ArrayExpr", letBlocks.Value)
	}

	forStmt, ok := fn.Body[4].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement 4 = %#v, want ForStatement", fn.Body[4])
	}
	if len(forStmt.Body) != 2 {
		t.Fatalf("for body has %d statements, want 2", len(forStmt.Body))
	}
	letBlockPtr, ok := forStmt.Body[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("for body[0] = %#v, want LetStatement", forStmt.Body[0])
	}
	method, ok := letBlockPtr.Value.(*ast.MethodCallExpr)
	if !ok || method.Method != "borrow" {
		t.Fatalf("blockPtr initializer = %#v, want MethodCallExpr(borrow)", letBlockPtr.Value)
	}
	if _, ok := forStmt.Body[1].(*ast.ExpressionStatement); !ok {
		t.Fatalf("for body[1] = %#v, want ExpressionStatement(append)", forStmt.Body[1])
	}
}

func TestParseLeftFoldsBinaryOperators(t *testing.T) {
	region := mustParse(t, `region R { fn main(x) { return 1 + 2 + 3; }; }`)
	ret := region.Functions()[0].Body[0].(*ast.ReturnStatement)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("return value = %#v, want BinaryExpr", ret.Value)
	}
	// leftmost derivation: (1 + 2) + 3, not 1 + (2 + 3)
	left, ok := bin.Left.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected left operand to itself be a BinaryExpr, got %#v", bin.Left)
	}
	if _, ok := left.Left.(*ast.NumberExpr); !ok {
		t.Fatalf("expected innermost left operand to be a NumberExpr, got %#v", left.Left)
	}
	if _, ok := bin.Right.(*ast.NumberExpr); !ok {
		t.Fatalf("expected outer right operand to be a NumberExpr, got %#v", bin.Right)
	}
}

func TestParseIfElse(t *testing.T) {
	region := mustParse(t, `region R { fn main(x) {
		if x < 10 {
			return 1;
		} else {
			return 0;
		};
		return 0;
	}; }`)
	stmt := region.Functions()[0].Body[0]
	ifElse, ok := stmt.(*ast.IfElseStatement)
	if !ok {
		t.Fatalf("statement = %#v, want IfElseStatement", stmt)
	}
	if len(ifElse.Then) != 1 || len(ifElse.Else) != 1 {
		t.Fatalf("ifElse = %+v", ifElse)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	region := mustParse(t, `region R { fn main(x) {
		if x < 10 {
			return 1;
		};
		return 0;
	}; }`)
	stmt := region.Functions()[0].Body[0]
	if _, ok := stmt.(*ast.IfStatement); !ok {
		t.Fatalf("statement = %#v, want IfStatement", stmt)
	}
}

func TestParseFailureOnMalformedInput(t *testing.T) {
	l := lexer.New("t.rgn", `region R { fn main(x) { let = 1; }; }`)
	toks := l.All()
	_, err := ParseRegion(toks)
	if err != Error {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseIsPureFunctionOfTokens(t *testing.T) {
	src := `region R { fn f(x) { let a = x + 1; return a; }; }`
	l1 := lexer.New("t.rgn", src)
	r1, err1 := ParseRegion(l1.All())
	l2 := lexer.New("t.rgn", src)
	r2, err2 := ParseRegion(l2.All())
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v / %v", err1, err2)
	}
	if r1.String() != r2.String() {
		t.Fatalf("parsing the same token sequence twice produced different ASTs:\n%s\nvs\n%s", r1.String(), r2.String())
	}
}

func TestParseCallStatement(t *testing.T) {
	region := mustParse(t, `region R { fn f(x) { blackbox(x); return 0; }; }`)
	stmt := region.Functions()[0].Body[0]
	call, ok := stmt.(*ast.CallStatement)
	if !ok || call.Name != "blackbox" {
		t.Fatalf("statement = %#v, want CallStatement(blackbox)", stmt)
	}
}
