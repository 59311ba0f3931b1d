// Command pathfind runs the maze path finder over an embedded level and
// prints the path on an ASCII map.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/evermaze/astar"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/levels"
	"github.com/milk9111/evermaze/obj"
	"github.com/milk9111/evermaze/tmx"
)

func main() {
	levelName := flag.String("level", "tutorial", "embedded level name ("+strings.Join(levels.Names(), ", ")+")")
	layer := flag.String("layer", "", "walkable layer (defaults to the first layer)")
	from := flag.String("from", "0,0", "start point x,y")
	to := flag.String("to", "", "target point x,y (defaults to the far corner)")
	limit := flag.Int("limit", 0, "maximum path length, 0 for none")
	diagonal := flag.Bool("diagonal", false, "allow diagonal steps")
	heuristic := flag.String("heuristic", "manhattan", "manhattan, euclidean or octagonal")
	flag.Parse()

	if err := run(os.Stdout, options{
		level:     *levelName,
		layer:     *layer,
		from:      *from,
		to:        *to,
		limit:     *limit,
		diagonal:  *diagonal,
		heuristic: *heuristic,
	}); err != nil {
		log.Fatalf("pathfind: %v", err)
	}
}

type options struct {
	level     string
	layer     string
	from      string
	to        string
	limit     int
	diagonal  bool
	heuristic string
}

func run(out io.Writer, opts options) error {
	lvl, err := obj.LoadLevelFromFS(levels.LevelsFS, opts.level)
	if err != nil {
		return err
	}
	layer := opts.layer
	if layer == "" {
		layer = lvl.LayerNames()[0]
	}
	index, err := tmx.New(lvl, []tmx.LayerSpec{{Name: layer, Layer: layer, Inverse: true, Collisions: true}})
	if err != nil {
		return err
	}

	w, h := lvl.Size()
	src, err := parsePoint(opts.from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	dst := common.Point{X: w - 1, Y: h - 1}
	if opts.to != "" {
		if dst, err = parsePoint(opts.to); err != nil {
			return fmt.Errorf("-to: %w", err)
		}
	}
	heur, ok := astar.HeuristicByName(opts.heuristic)
	if !ok {
		return fmt.Errorf("unknown heuristic %q", opts.heuristic)
	}

	gen := astar.NewGenerator(w, h)
	gen.SetDiagonalMovement(opts.diagonal)
	gen.SetHeuristic(heur)
	gen.SetCollisions(index.Collisions(layer))

	path := gen.FindPath(src, dst, opts.limit)
	reached := len(path) > 0 && path[len(path)-1] == dst
	fmt.Fprintf(out, "%s/%s %v -> %v: %d points, reached=%v\n", opts.level, layer, src, dst, len(path), reached)
	fmt.Fprintln(out, formatPath(path))
	fmt.Fprint(out, drawMap(index, layer, path, src, dst))
	return nil
}

func parsePoint(s string) (common.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return common.NoPoint, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return common.NoPoint, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return common.NoPoint, err
	}
	return common.Point{X: x, Y: y}, nil
}

func formatPath(path []common.Point) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// drawMap renders walls as '#', the start as 'S', the target as 'T' and
// the path as '*'.
func drawMap(index *tmx.Object, layer string, path []common.Point, src, dst common.Point) string {
	onPath := make(map[common.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	w, h := index.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := common.Point{X: x, Y: y}
			switch {
			case p == src:
				b.WriteByte('S')
			case p == dst:
				b.WriteByte('T')
			case onPath[p]:
				b.WriteByte('*')
			case index.ContainsPoint(p, layer):
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
