package railroad

import (
	"testing"

	"github.com/matzehuels/regexrail/pkg/ast"
)

func TestRepeatLabel(t *testing.T) {
	tests := []struct {
		min, max int
		want     string
	}{
		{1, 1, ""},
		{0, 1, ""},
		{3, 3, "3 times"},
		{1, 2, "1 or 2 times"},
		{2, 3, "2 or 3 times"},
		{0, 2, "0 to 2 times"},
		{2, 5, "2 to 5 times"},
		{0, ast.Unbounded, "0 or more times"},
		{1, ast.Unbounded, "1 or more times"},
		{4, ast.Unbounded, "4 or more times"},
	}
	for _, tt := range tests {
		r := ast.Repeat{Min: tt.min, Max: tt.max}
		if got := RepeatLabel(r); got != tt.want {
			t.Errorf("RepeatLabel(%v) = %q, want %q", r, got, tt.want)
		}
	}
}

func TestRepeatGeometry(t *testing.T) {
	tests := []struct {
		name          string
		min, max      int
		width, height float64
		y             float64
		in, out       float64
		items         int
	}{
		{"once", 1, 1, 48, 32, -16, 0, 48, 2},
		{"plus", 1, ast.Unbounded, 120, 70, -16, 36, 84, 4},
		{"optional", 0, 1, 96, 46, -30, 24, 72, 3},
		{"star", 0, ast.Unbounded, 120, 84, -30, 36, 84, 5},
		{"exactly three", 3, 3, 72, 70, -16, 12, 60, 4},
	}
	e := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.node(withRepeat(exact("a"), tt.min, tt.max), 0, 0)
			if err != nil {
				t.Fatalf("node: %v", err)
			}
			if b.Width != tt.width || b.Height != tt.height || b.Y != tt.y {
				t.Errorf("size = %vx%v at y %v, want %vx%v at %v", b.Width, b.Height, b.Y, tt.width, tt.height, tt.y)
			}
			if b.LineInX != tt.in || b.LineOutX != tt.out {
				t.Errorf("anchors = %v..%v, want %v..%v", b.LineInX, b.LineOutX, tt.in, tt.out)
			}
			if len(b.Items) != tt.items {
				t.Errorf("got %d items, want %d", len(b.Items), tt.items)
			}
		})
	}
}

func TestRepeatPaths(t *testing.T) {
	e := testEngine()

	plus, _ := e.node(withRepeat(exact("a"), 1, ast.Unbounded), 0, 0)
	loop := plus.Items[0].(*Path)
	want := "M 36 0 Q 24 0 24 12 V 16 Q 24 28 36 28 H 84 Q 96 28 96 16 V 12 Q 96 0 84 0"
	if got := loop.D(); got != want {
		t.Errorf("loop = %q\nwant   %q", got, want)
	}
	if loop.Color != DefaultOptions().GroupBorderColor {
		t.Errorf("loop color = %q, want the group border color", loop.Color)
	}
	caption := plus.Items[1].(*Text)
	if caption.Content != "1 or more times" || caption.X != 60 || caption.Y != 42 {
		t.Errorf("caption = %q at (%v, %v)", caption.Content, caption.X, caption.Y)
	}

	opt, _ := e.node(withRepeat(exact("a"), 0, 1), 0, 0)
	skip := opt.Items[0].(*Path)
	want = "M 0 0 Q 12 0 12 -12 V -16 Q 12 -28 24 -28 H 72 Q 84 -28 84 -16 V -12 Q 84 0 96 0"
	if got := skip.D(); got != want {
		t.Errorf("skip = %q\nwant   %q", got, want)
	}
	if skip.Color != DefaultOptions().BorderColor {
		t.Errorf("skip color = %q, want the border color", skip.Color)
	}
}
