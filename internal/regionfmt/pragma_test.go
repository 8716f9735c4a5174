package regionfmt_test

import (
	"testing"

	"github.com/regionc/regionc/internal/regionfmt"
)

func TestParseCommentRecognizesPragma(t *testing.T) {
	p, ok, err := regionfmt.ParseComment("// regionc:pragma indent=4")
	if err != nil || !ok {
		t.Fatalf("ParseComment() = (_, %v, %v), want ok with no error", ok, err)
	}
	if p.Key != "indent" || p.Value != "4" {
		t.Errorf("got Pragma{%q, %q}, want {indent, 4}", p.Key, p.Value)
	}
}

func TestParseCommentIgnoresOrdinaryComments(t *testing.T) {
	_, ok, err := regionfmt.ParseComment("// just a note")
	if ok || err != nil {
		t.Errorf("ParseComment() = (_, %v, %v), want (_, false, nil)", ok, err)
	}
}

func TestParseCommentReportsMalformedDirective(t *testing.T) {
	_, ok, err := regionfmt.ParseComment("// regionc:pragma !!!")
	if !ok || err == nil {
		t.Errorf("expected ok=true with a parse error for a malformed directive, got ok=%v err=%v", ok, err)
	}
}

func TestDirectivesScansWholeSource(t *testing.T) {
	src := `region demo {
  // regionc:pragma indent=2
  fn noop(x) {
    return 0; // trailing note, not a pragma
  }
}
// regionc:pragma indent=4
`
	pragmas, errs := regionfmt.Directives(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(pragmas) != 2 {
		t.Fatalf("got %d pragmas, want 2", len(pragmas))
	}

	width, ok := regionfmt.IndentWidth(pragmas)
	if !ok || width != 2 {
		t.Errorf("IndentWidth() = (%d, %v), want (2, true) — first directive wins", width, ok)
	}
}
