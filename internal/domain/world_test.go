package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewGridSpec(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		cellFeet float64
		wantErr  error
	}{
		{"valid", 10, 8, 5, nil},
		{"zero width", 0, 8, 5, ErrInvalidDimensions},
		{"negative height", 10, -1, 5, ErrInvalidDimensions},
		{"zero cell feet", 10, 8, 0, ErrInvalidCellFeet},
		{"negative cell feet", 10, 8, -5, ErrInvalidCellFeet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGridSpec(tt.w, tt.h, tt.cellFeet)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if g.Width != tt.w || g.Height != tt.h {
					t.Errorf("got %dx%d, want %dx%d", g.Width, g.Height, tt.w, tt.h)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewGridSpec() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridSpec_Clamp(t *testing.T) {
	g := GridSpec{Width: 5, Height: 4, CellFeet: 5}

	if got := g.Clamp(Cell{X: -3, Y: 10}); got != (Cell{X: 0, Y: 3}) {
		t.Errorf("Clamp = %v, want (0,3)", got)
	}
	if got := g.Clamp(Cell{X: 2, Y: 2}); got != (Cell{X: 2, Y: 2}) {
		t.Errorf("in-bounds cell changed: %v", got)
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", a, true},
		{"touching edge", Rect{X: 2, Y: 0, W: 1, H: 1}, false},
		{"inner corner", Rect{X: 1, Y: 1, W: 3, H: 3}, true},
		{"far away", Rect{X: 5, Y: 5, W: 1, H: 1}, false},
		{"empty", Rect{X: 0, Y: 0, W: 0, H: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestElement_FootprintAndCenter(t *testing.T) {
	e := Element{ID: "e1", Kind: ElementEnemy, Anchor: Cell{X: 3, Y: 4}, Size: 2}

	if fp := e.Footprint(); fp != (Rect{X: 3, Y: 4, W: 2, H: 2}) {
		t.Errorf("Footprint = %+v", fp)
	}
	cx, cy := e.Center()
	if cx != 4 || cy != 5 {
		t.Errorf("Center = (%v,%v), want (4,5)", cx, cy)
	}

	// Size 0 трактуется как 1
	e.Size = 0
	if fp := e.Footprint(); fp.W != 1 || fp.H != 1 {
		t.Errorf("zero size footprint = %+v", fp)
	}
}

func TestReachabilityResult_JSONIsOrdered(t *testing.T) {
	r := ReachabilityResult{
		{X: 1, Y: 0}: 1,
		{X: 0, Y: 0}: 0,
		{X: 0, Y: 1}: 1,
	}

	first, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := json.Marshal(r)
	if string(first) != string(second) {
		t.Errorf("non-deterministic encoding: %s vs %s", first, second)
	}
	if string(first) != `[{"x":0,"y":0,"cost":0},{"x":1,"y":0,"cost":1},{"x":0,"y":1,"cost":1}]` {
		t.Errorf("unexpected encoding %s", first)
	}

	var back ReachabilityResult
	if err := json.Unmarshal(first, &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 3 || back[Cell{X: 0, Y: 1}] != 1 {
		t.Errorf("decoded %v", back)
	}

	cells := r.Cells()
	if cells[0].Cell != (Cell{X: 0, Y: 0}) || cells[2].Cell != (Cell{X: 0, Y: 1}) {
		t.Errorf("Cells() not row-major: %v", cells)
	}
}

func TestVisibilityResult_Defaults(t *testing.T) {
	r := VisibilityResult{Mode: VisibilityAnyEnemy, Width: 2, Height: 1, Visible: []bool{true, false}}

	if !r.IsVisible(Cell{X: 0, Y: 0}) || r.IsVisible(Cell{X: 1, Y: 0}) {
		t.Error("unexpected boolean visibility")
	}
	if r.IsVisible(Cell{X: 5, Y: 5}) {
		t.Error("out of bounds cell must be hidden")
	}

	f := VisibilityResult{Mode: VisibilityObserver, Width: 1, Height: 1, Severity: []float64{0.5}}
	if f.SeverityAt(Cell{X: 0, Y: 0}) != 0.5 {
		t.Errorf("SeverityAt = %v", f.SeverityAt(Cell{X: 0, Y: 0}))
	}
}

func TestSnapshot_Group(t *testing.T) {
	s := Snapshot{Elements: []Element{
		{ID: "t1", Kind: ElementTerrain, GroupID: "wall"},
		{ID: "p1", Kind: ElementPlayer, GroupID: "wall"}, // у акторов группы нет
		{ID: "t2", Kind: ElementTerrain, GroupID: "wall"},
		{ID: "t3", Kind: ElementTerrain},
	}}

	members := s.Group("wall")
	if len(members) != 2 || members[0].ID != "t1" || members[1].ID != "t2" {
		t.Errorf("Group() = %v", members)
	}
	if s.Group("") != nil {
		t.Error("empty group id must not match ungrouped terrain")
	}
	if s.Find("missing") != nil {
		t.Error("Find(missing) should be nil")
	}
}
