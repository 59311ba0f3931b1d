package tmx

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/evermaze/common"
)

type gridMap struct {
	w, h   int
	layers map[string][]int
}

func (m gridMap) Size() (int, int) { return m.w, m.h }

func (m gridMap) LayerGIDs(name string) ([]int, bool) {
	gids, ok := m.layers[name]
	return gids, ok
}

// parseGrid turns rows of '.', '#' and digits into gids. '#' is an empty
// cell, '.' is gid 1 and a digit is that gid.
func parseGrid(rows ...string) gridMap {
	h := len(rows)
	w := len(rows[0])
	gids := make([]int, 0, w*h)
	for _, row := range rows {
		for _, c := range row {
			switch {
			case c == '#':
				gids = append(gids, 0)
			case c == '.':
				gids = append(gids, 1)
			default:
				gids = append(gids, int(c-'0'))
			}
		}
	}
	return gridMap{w: w, h: h, layers: map[string][]int{"maze": gids}}
}

func TestPixelMapping(t *testing.T) {
	m := parseGrid(
		".....",
		".....",
		".....",
	)
	obj, err := New(m, []LayerSpec{{Name: "main", Layer: "maze"}}, WithOrigin(common.Vec2{X: 1000, Y: 500}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tests := []struct {
		p    common.Point
		want common.Vec2
	}{
		{common.Point{X: 2, Y: 1}, common.Vec2{X: 1000, Y: 500}},
		{common.Point{X: 0, Y: 0}, common.Vec2{X: 1000 - 2*108, Y: 500 + 108}},
		{common.Point{X: 4, Y: 2}, common.Vec2{X: 1000 + 2*108, Y: 500 - 108}},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := obj.Position(tt.p, "main"); got != tt.want {
				t.Fatalf("Position(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	m := parseGrid(
		"..#..",
		".#.#.",
		".....",
		"##.##",
	)
	obj, err := New(m, []LayerSpec{{Name: "main", Layer: "maze", Inverse: true, Collisions: true}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, e := range obj.Entries("main") {
		pos := obj.Position(e.Point, "main")
		if got := obj.Point(pos, "main"); got != e.Point {
			t.Fatalf("round trip %v -> %v -> %v", e.Point, pos, got)
		}
		if !obj.ContainsPosition(pos, "main") {
			t.Fatalf("ContainsPosition(%v) = false", pos)
		}
	}
	if got := obj.Point(common.Vec2{X: 3, Y: 7}, "main"); got != common.NoPoint {
		t.Fatalf("Point of unknown position = %v, want NoPoint", got)
	}
}

func TestPartition(t *testing.T) {
	m := parseGrid(
		"..#..",
		".#.#.",
		"#....",
	)
	obj, err := New(m, []LayerSpec{{Name: "main", Layer: "maze", Collisions: true}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	blocked := obj.Collisions("main")
	if len(blocked) != 4 {
		t.Fatalf("collisions = %v, want 4 points", blocked)
	}
	for _, p := range blocked {
		if obj.ContainsPoint(p, "main") {
			t.Fatalf("%v is both blocked and walkable", p)
		}
	}
	if got, want := obj.Len("main")+len(blocked), 15; got != want {
		t.Fatalf("walkable+blocked = %d, want %d", got, want)
	}
}

func TestGIDFilter(t *testing.T) {
	m := parseGrid(
		"1#2",
		"212",
	)
	obj, err := New(m, []LayerSpec{
		{Name: "spawn", Layer: "maze", GIDs: []int{2}, Collisions: true},
		{Name: "all", Layer: "maze"},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := obj.Len("spawn"); got != 3 {
		t.Fatalf("spawn len = %d, want 3", got)
	}
	if obj.ContainsPoint(common.Point{X: 0, Y: 0}, "spawn") {
		t.Fatalf("gid 1 cell indexed on the spawn layer")
	}
	// filtered cells are neither walkable nor blocked
	if got := obj.Collisions("spawn"); len(got) != 1 || got[0] != (common.Point{X: 1, Y: 0}) {
		t.Fatalf("spawn collisions = %v", got)
	}
	if got := obj.Len("all"); got != 5 {
		t.Fatalf("all len = %d, want 5", got)
	}
	if got := obj.Collisions("all"); len(got) != 0 {
		t.Fatalf("collisions recorded without the flag: %v", got)
	}
}

func TestEntry(t *testing.T) {
	obj, err := New(parseGrid(".#", ".."), []LayerSpec{{Name: "main", Layer: "maze"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if e, ok := obj.Entry(common.Point{X: 0, Y: 1}, "main"); !ok || e.Point != (common.Point{X: 0, Y: 1}) {
		t.Fatalf("Entry(0,1) = %v, %v", e, ok)
	}
	e, ok := obj.Entry(common.Point{X: 1, Y: 0}, "main")
	if ok || e.Point != common.NoPoint || e.Position != common.NoVec {
		t.Fatalf("Entry of a wall = %v, %v", e, ok)
	}
	if got := obj.Position(common.Point{X: -1, Y: 0}, "main"); got != common.NoVec {
		t.Fatalf("Position out of bounds = %v", got)
	}
}

func TestUnknownLayerPanics(t *testing.T) {
	obj, err := New(parseGrid(".."), []LayerSpec{{Name: "main", Layer: "maze"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tests := []struct {
		name string
		fn   func()
	}{
		{"position", func() { obj.Position(common.Point{}, "nope") }},
		{"contains", func() { obj.ContainsPoint(common.Point{}, "nope") }},
		{"random", func() { obj.RandomEntry("nope") }},
		{"inverse missing", func() { obj.Point(common.Vec2{}, "main") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestNewErrors(t *testing.T) {
	m := parseGrid("..")
	tests := []struct {
		name  string
		specs []LayerSpec
		want  error
	}{
		{"missing name", []LayerSpec{{Layer: "maze"}}, ErrInvalidLayerSpec},
		{"missing layer field", []LayerSpec{{Name: "main"}}, ErrInvalidLayerSpec},
		{"unknown source", []LayerSpec{{Name: "main", Layer: "walls"}}, ErrMissingLayer},
		{"duplicate", []LayerSpec{{Name: "main", Layer: "maze"}, {Name: "main", Layer: "maze"}}, ErrInvalidLayerSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(m, tt.specs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRandomEntryUniform(t *testing.T) {
	obj, err := New(parseGrid("..", ".#"), []LayerSpec{{Name: "main", Layer: "maze"}},
		WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	counts := map[common.Point]int{}
	const draws = 3000
	for i := 0; i < draws; i++ {
		e, ok := obj.RandomEntry("main")
		if !ok {
			t.Fatalf("RandomEntry returned nothing")
		}
		counts[e.Point]++
	}
	if len(counts) != 3 {
		t.Fatalf("drew %d distinct points, want 3", len(counts))
	}
	for p, n := range counts {
		if n < draws/3-200 || n > draws/3+200 {
			t.Fatalf("point %v drawn %d times out of %d", p, n, draws)
		}
	}
}

func TestRandomEntryEmptyLayer(t *testing.T) {
	obj, err := New(parseGrid("##"), []LayerSpec{{Name: "main", Layer: "maze"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if e, ok := obj.RandomEntry("main"); ok || e.Point != common.NoPoint {
		t.Fatalf("RandomEntry on empty layer = %v, %v", e, ok)
	}
}
