package astar

import "testing"

func TestHeuristics(t *testing.T) {
	tests := []struct {
		name string
		h    Heuristic
		want int
	}{
		{"manhattan", Manhattan, 7},
		{"euclidean", Euclidean, 50},
		{"octagonal", Octagonal, 52},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h(pt(1, 1), pt(4, 5)); got != tt.want {
				t.Fatalf("%s = %d, want %d", tt.name, got, tt.want)
			}
			if got := tt.h(pt(4, 5), pt(1, 1)); got != tt.want {
				t.Fatalf("%s is not symmetric: %d", tt.name, got)
			}
		})
	}
}

func TestHeuristicByName(t *testing.T) {
	for _, name := range []string{"", "manhattan", "euclidean", "octagonal"} {
		if _, ok := HeuristicByName(name); !ok {
			t.Fatalf("%q not resolved", name)
		}
	}
	if _, ok := HeuristicByName("chebyshev"); ok {
		t.Fatalf("unknown heuristic resolved")
	}
}
