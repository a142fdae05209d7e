package layout

import (
	"sort"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/tidwall/rtree"
)

// Merger collapses line detections that the engine reported separately for
// what is visually one line.
type Merger struct {
	Margin   float64
	Strategy core.MergeStrategy
}

// NewMerger builds a Merger from the shared configuration.
func NewMerger(cfg *core.Config) Merger {
	return Merger{Margin: cfg.MergeMargin, Strategy: cfg.MergeStrategy}
}

// Merge returns the merged lines of one block.
func (m Merger) Merge(lines []core.LineElement) []core.LineElement {
	if m.Strategy == core.MergeCluster {
		return mergeClusters(lines, m.Margin)
	}
	return mergeFirstMatch(lines, m.Margin)
}

// Combine merges l into c: the bbox is the union and the spans of the line
// further left come first. On equal x0 the spans of l lead.
func Combine(l, c core.LineElement) core.LineElement {
	return newCandidate(l).absorb(newCandidate(c)).line()
}

// fragment remembers where a group of spans came from so that spans stay in
// left-to-right order however many merges a line goes through.
type fragment struct {
	x0    float64
	spans []core.TextSpan
}

type candidate struct {
	bbox  core.Rect
	parts []fragment
}

func newCandidate(l core.LineElement) candidate {
	return candidate{bbox: l.BBox, parts: []fragment{{x0: l.BBox.X0, spans: l.Spans}}}
}

// absorb returns c merged into the receiver; the receiver's parts win ties.
func (r candidate) absorb(c candidate) candidate {
	parts := make([]fragment, 0, len(r.parts)+len(c.parts))
	parts = append(parts, r.parts...)
	parts = append(parts, c.parts...)
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].x0 < parts[j].x0 })
	return candidate{bbox: r.bbox.Union(c.bbox), parts: parts}
}

func (r candidate) line() core.LineElement {
	var spans []core.TextSpan
	for _, p := range r.parts {
		spans = append(spans, p.spans...)
	}
	return core.NewLineElement(r.bbox, spans)
}

// mergeFirstMatch folds each incoming line into the first accepted line it
// overlaps at a similar height. Accepted lines are never rescanned, so the
// result depends on input order.
func mergeFirstMatch(lines []core.LineElement, margin float64) []core.LineElement {
	var accepted []candidate
	for _, l := range lines {
		in := newCandidate(l)
		merged := false
		for i, c := range accepted {
			if Overlaps(in.bbox, c.bbox, margin) && SimilarHeight(in.bbox, c.bbox, margin) {
				accepted[i] = in.absorb(c)
				merged = true
				break
			}
		}
		if !merged {
			accepted = append(accepted, in)
		}
	}

	out := make([]core.LineElement, len(accepted))
	for i, c := range accepted {
		out[i] = c.line()
	}
	return out
}

// mergeClusters merges every group of lines connected through pairs that
// overlap at a similar height, independent of input order. Groups come out in
// the order of their first line.
func mergeClusters(lines []core.LineElement, margin float64) []core.LineElement {
	if len(lines) < 2 {
		return append([]core.LineElement(nil), lines...)
	}

	// x spans the widened range; y is the top edge, matched against a
	// margin window on query.
	var tr rtree.RTreeG[int]
	for i, l := range lines {
		tr.Insert(
			[2]float64{l.BBox.X0 - margin, l.BBox.Y0},
			[2]float64{l.BBox.X1 + margin, l.BBox.Y0},
			i,
		)
	}

	uf := newUnionFind(len(lines))
	for i, l := range lines {
		tr.Search(
			[2]float64{l.BBox.X0 - margin, l.BBox.Y0 - margin},
			[2]float64{l.BBox.X1 + margin, l.BBox.Y0 + margin},
			func(_, _ [2]float64, j int) bool {
				if j != i && Overlaps(l.BBox, lines[j].BBox, margin) && SimilarHeight(l.BBox, lines[j].BBox, margin) {
					uf.union(i, j)
				}
				return true
			},
		)
	}

	slot := make(map[int]int)
	var groups []candidate
	for i, l := range lines {
		root := uf.find(i)
		k, ok := slot[root]
		if !ok {
			slot[root] = len(groups)
			groups = append(groups, newCandidate(l))
			continue
		}
		groups[k] = groups[k].absorb(newCandidate(l))
	}

	out := make([]core.LineElement, len(groups))
	for i, g := range groups {
		out[i] = g.line()
	}
	return out
}

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union keeps the smaller index as root.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
