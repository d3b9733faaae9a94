package railroad

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
)

// testEngine uses an 8x16 character cell so every coordinate stays a
// multiple of one half.
func testEngine() *Engine {
	return New(DefaultOptions(), FixedMeasurer{CharWidth: 8, LineHeight: 16})
}

func exact(s string) ast.Node { return ast.Node{Kind: ast.KindExact, Chars: s} }

func withRepeat(n ast.Node, min, max int) ast.Node {
	n.Repeat = &ast.Repeat{Min: min, Max: max}
	return n
}

func rects(items []Primitive) []*Rect {
	var out []*Rect
	for _, it := range items {
		if r, ok := it.(*Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestLayoutSingleLiteral(t *testing.T) {
	d, err := testEngine().Layout([]ast.Node{exact("a")})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if d.Width != 124 || d.Height != 78 {
		t.Errorf("canvas = %vx%v, want 124x78", d.Width, d.Height)
	}

	counts := d.Count()
	if counts[TypeCircle] != 2 || counts[TypeRect] != 1 || counts[TypeText] != 1 || counts[TypePath] != 2 {
		t.Errorf("Count() = %v", counts)
	}

	r := rects(d.Items)[0]
	if r.X != 38 || r.Y != 36 {
		t.Errorf("literal box at (%v, %v), want (38, 36)", r.X, r.Y)
	}
	start := d.Items[0].(*Circle)
	if start.CX != 16 || start.CY != 52 {
		t.Errorf("start marker at (%v, %v), want (16, 52)", start.CX, start.CY)
	}
	var connector *Path
	for _, it := range d.Items {
		if p, ok := it.(*Path); ok {
			connector = p
			break
		}
	}
	if got := connector.D(); got != "M 22 52 H 38" {
		t.Errorf("first connector = %q, want %q", got, "M 22 52 H 38")
	}
}

func TestSequenceWidth(t *testing.T) {
	e := testEngine()
	b, err := e.sequence([]ast.Node{exact("a"), exact("bc"), {Kind: ast.KindDot}}, 0, 0)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	// 48 + 56 + 144, two gaps of 16
	if b.Width != 280 {
		t.Errorf("Width = %v, want 280", b.Width)
	}
	if b.LineInX != 0 || b.LineOutX != 280 {
		t.Errorf("anchors = %v..%v, want 0..280", b.LineInX, b.LineOutX)
	}
	if b.Y != -16 || b.Height != 32 {
		t.Errorf("extent = y %v h %v, want y -16 h 32", b.Y, b.Height)
	}
}

func TestLayoutDoesNotModifyInput(t *testing.T) {
	nodes := []ast.Node{exact("a"), exact("b")}
	if _, err := testEngine().Layout(nodes); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Kind != ast.KindExact || nodes[1].Chars != "b" {
		t.Errorf("input modified: %v", nodes)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []ast.Node
		code  errors.Code
	}{
		{"unknown kind", []ast.Node{{Kind: "lookbehind"}}, errors.ErrCodeUnsupported},
		{"nested unknown kind", []ast.Node{{Kind: ast.KindGroup, Sub: []ast.Node{{Kind: "x"}}}}, errors.ErrCodeUnsupported},
		{"max below min", []ast.Node{withRepeat(exact("a"), 3, 2)}, errors.ErrCodeInvalidQuantifier},
		{"negative min", []ast.Node{withRepeat(exact("a"), -1, 2)}, errors.ErrCodeInvalidQuantifier},
		{"unknown assertion", []ast.Node{{Kind: ast.KindAssert, AssertionType: "AssertLookbehind"}}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testEngine().Layout(tt.nodes)
			if !errors.Is(err, tt.code) {
				t.Errorf("Layout() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestChoice(t *testing.T) {
	e := testEngine()
	n := ast.Node{Kind: ast.KindChoice, Branches: [][]ast.Node{{exact("a")}, {exact("bc")}}}
	b, err := e.choice(n, 0, 0)
	if err != nil {
		t.Fatalf("choice: %v", err)
	}
	if b.Width != 96 || b.Height != 78 {
		t.Errorf("size = %vx%v, want 96x78", b.Width, b.Height)
	}
	if b.Y != -39 || b.LineInX != 0 || b.LineOutX != 96 {
		t.Errorf("y %v anchors %v..%v, want -39 0..96", b.Y, b.LineInX, b.LineOutX)
	}

	rs := rects(b.Items)
	if len(rs) != 2 {
		t.Fatalf("got %d boxes, want 2", len(rs))
	}
	// both branches are centred on x = 48
	for _, r := range rs {
		if mid := r.X + r.Width/2; mid != 48 {
			t.Errorf("box %vx%v centred at %v, want 48", r.Width, r.Height, mid)
		}
	}
	if rs[0].Y != -35 || rs[1].Y != 3 {
		t.Errorf("branch tops = %v, %v, want -35, 3", rs[0].Y, rs[1].Y)
	}
	// the narrow branch needs filler lines on both sides, the wide one none
	if len(b.Items) != 10 {
		t.Errorf("got %d items, want 10", len(b.Items))
	}
}

func TestSmoothLine(t *testing.T) {
	e := testEngine()
	ops := func(p *Path) string {
		var s []byte
		for _, c := range p.Commands {
			s = append(s, c.Op)
		}
		return string(s)
	}
	if got := ops(e.smoothLine(0, 0, 20, 10)); got != "MC" {
		t.Errorf("near-level connector ops = %q, want MC", got)
	}
	p := e.smoothLine(0, 0, 20, 40)
	if got := ops(p); got != "MQVQH" {
		t.Errorf("tall connector ops = %q, want MQVQH", got)
	}
	if got := p.D(); got != "M 0 0 Q 10 0 10 10 V 30 Q 10 40 20 40 H 20" {
		t.Errorf("tall connector = %q", got)
	}
	up := e.smoothLine(100, 40, 80, 0)
	if got := up.D(); got != "M 100 40 Q 90 40 90 30 V 10 Q 90 0 80 0 H 80" {
		t.Errorf("reversed connector = %q", got)
	}
}

func TestGroup(t *testing.T) {
	e := testEngine()

	b, err := e.group(ast.Node{Kind: ast.KindGroup, Num: 1, Sub: []ast.Node{exact("a")}}, 0, 0)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if b.Width != 84 || b.Height != 90 || b.Y != -56 {
		t.Errorf("capturing group = %vx%v at y %v, want 84x90 at -56", b.Width, b.Height, b.Y)
	}
	if b.LineInX != 18 || b.LineOutX != 66 {
		t.Errorf("anchors = %v..%v, want 18..66", b.LineInX, b.LineOutX)
	}
	var outline *Rect
	for _, r := range rects(b.Items) {
		if r.Dashed {
			outline = r
		}
	}
	if outline == nil || outline.Type() != TypeDashedRect {
		t.Fatal("capturing group has no dashed outline")
	}
	if outline.X != 0 || outline.Y != -34 || outline.Width != 84 || outline.Height != 68 {
		t.Errorf("outline = %+v", *outline)
	}

	plain, err := e.group(ast.Node{Kind: ast.KindGroup, Sub: []ast.Node{exact("a")}}, 0, 0)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if plain.Width != 48 || len(plain.Items) != 2 {
		t.Errorf("non-capturing group = width %v, %d items; want the body", plain.Width, len(plain.Items))
	}
}

func TestGroupLabelWiderThanBody(t *testing.T) {
	e := testEngine()
	b, err := e.group(ast.Node{Kind: ast.KindGroup, Num: 12, Sub: []ast.Node{{Kind: ast.KindEmpty}}}, 0, 0)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	// "Group #12" is 72 wide, the outline 46
	if b.Width != 72 {
		t.Errorf("Width = %v, want 72", b.Width)
	}
	if b.LineInX != 31 || b.LineOutX != 41 {
		t.Errorf("anchors = %v..%v, want 31..41", b.LineInX, b.LineOutX)
	}
}

func TestAssert(t *testing.T) {
	e := testEngine()
	tests := []struct {
		typ   ast.AssertionType
		width float64
	}{
		{ast.AssertBegin, 120},
		{ast.AssertEnd, 104},
		{ast.AssertWordBoundary, 136},
		{ast.AssertNonWordBoundary, 160},
	}
	for _, tt := range tests {
		b, err := e.assert(ast.Node{Kind: ast.KindAssert, AssertionType: tt.typ}, 0, 0)
		if err != nil {
			t.Fatalf("assert(%s): %v", tt.typ, err)
		}
		if b.Width != tt.width {
			t.Errorf("assert(%s).Width = %v, want %v", tt.typ, b.Width, tt.width)
		}
	}

	look, err := e.assert(ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertLookahead, Sub: []ast.Node{exact("a")}}, 0, 0)
	if err != nil {
		t.Fatalf("lookahead: %v", err)
	}
	if look.Width != 96 || look.Height != 76 || look.Y != -48 {
		t.Errorf("lookahead = %vx%v at y %v, want 96x76 at -48", look.Width, look.Height, look.Y)
	}
	if look.LineInX != 24 || look.LineOutX != 72 {
		t.Errorf("lookahead anchors = %v..%v, want 24..72", look.LineInX, look.LineOutX)
	}
	// body sits inside the outline, on the anchors
	rs := rects(look.Items)
	body, outline := rs[0], rs[1]
	if body.X != look.LineInX || outline.X != 12 {
		t.Errorf("body at %v outline at %v, want 24 and 12", body.X, outline.X)
	}
	var caption string
	for _, it := range look.Items {
		if tx, ok := it.(*Text); ok {
			caption = tx.Content
		}
	}
	if caption != "Followed by:" {
		t.Errorf("caption = %q", caption)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	nodes := []ast.Node{
		{Kind: ast.KindAssert, AssertionType: ast.AssertBegin},
		withRepeat(ast.Node{Kind: ast.KindGroup, Num: 1, Sub: []ast.Node{
			{Kind: ast.KindChoice, Branches: [][]ast.Node{
				{exact("foo")},
				{withRepeat(ast.Node{Kind: ast.KindCharset, Ranges: []string{"az"}, Classes: []string{"d"}}, 0, ast.Unbounded)},
			}},
		}}, 2, 5),
		{Kind: ast.KindAssert, AssertionType: ast.AssertNegativeLookahead, Sub: []ast.Node{{Kind: ast.KindDot}}},
	}
	d, err := testEngine().Layout(nodes)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	before, _ := json.Marshal(d.Items)
	Translate(d.Items, 7, -3.5)
	moved, _ := json.Marshal(d.Items)
	if string(moved) == string(before) {
		t.Fatal("Translate did not move anything")
	}
	Translate(d.Items, -7, 3.5)
	after, _ := json.Marshal(d.Items)
	if string(after) != string(before) {
		t.Errorf("round trip changed items:\n%s\n%s", before, after)
	}
}

func TestPathTranslate(t *testing.T) {
	p := newPath(Stroke{}, moveTo(1, 2), horizontalTo(3), verticalTo(4), quadTo(5, 6, 7, 8), cubicTo(1, 1, 2, 2, 3, 3))
	p.Translate(10, 100)
	want := "M 11 102 H 13 V 104 Q 15 106 17 108 C 11 101 12 102 13 103"
	if got := p.D(); got != want {
		t.Errorf("translated path = %q, want %q", got, want)
	}
}

type recordingSurface struct {
	cleared       int
	width, height float64
	items         []Primitive
}

func (s *recordingSurface) Clear()                      { s.cleared++; s.items = nil }
func (s *recordingSurface) SetSize(w, h float64)        { s.width, s.height = w, h }
func (s *recordingSurface) Add(items ...Primitive)      { s.items = append(s.items, items...) }
func literalParser(src string) ([]ast.Node, error)      { return []ast.Node{exact(src)}, nil }
func failingParser(string) ([]ast.Node, error)          { return nil, errors.New(errors.ErrCodeInvalidPattern, "bad") }

func TestDraw(t *testing.T) {
	e := testEngine()

	s := &recordingSurface{}
	if err := e.Draw(s, "a", ParserFunc(literalParser)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if s.cleared != 1 || s.width != 124 || s.height != 78 || len(s.items) != 6 {
		t.Errorf("surface = %+v", s)
	}

	empty := &recordingSurface{width: -1}
	if err := e.Draw(empty, "", ParserFunc(failingParser)); err != nil {
		t.Fatalf("Draw(empty): %v", err)
	}
	if empty.cleared != 1 || empty.width != -1 || len(empty.items) != 0 {
		t.Errorf("empty source drew something: %+v", empty)
	}

	if err := e.Draw(&recordingSurface{}, "x", ParserFunc(failingParser)); !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("Draw with failing parser = %v", err)
	}
}

func TestCaptionBoxes(t *testing.T) {
	d, err := testEngine().Layout([]ast.Node{
		{Kind: ast.KindBackref, Num: 2},
		{Kind: ast.KindDot},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	got := captions(d.Items)
	if len(got) != 2 || got[0] != "Backref #2" || got[1] != "Any Character" {
		t.Errorf("captions = %q, want [Backref #2, Any Character]", got)
	}
}
