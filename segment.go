package arrange

import "fmt"

// Segment is one normalized path command with its geometry and its position
// in the doubly linked chain of its subpath. Segments are identified by
// their index into the segment list and are immutable once created.
type Segment struct {
	ID      int
	Curve   Curve
	Subpath int
	Prev    int // -1 at the start of an open subpath
	Next    int // -1 at the end of an open subpath
}

func (s Segment) String() string {
	return fmt.Sprintf("%d:%v", s.ID, s.Curve)
}

// adjacentTo returns true when both segments are consecutive on the same
// subpath, ie. one's Next is the other. Intersections at their shared joint
// are the path's own connectivity, not crossings.
func (s Segment) adjacentTo(o Segment) bool {
	return s.Next == o.ID || o.Next == s.ID
}

// SplitSegment is a piece of an original segment after cutting at
// intersections. Parent is the originating segment's ID; a segment without
// interior intersections passes through as a single piece that still
// references its parent.
type SplitSegment struct {
	Segment
	Parent int
}

// segmentsFromPath normalizes a command stream into a flat segment list.
// Close commands emit a closing line segment when the pen is not already at
// the subpath start, and make the subpath's chain circular. Arc segments are
// carried along and rejected later by the intersection engine.
func segmentsFromPath(p *Path) ([]Segment, error) {
	if p == nil || p.IsEmpty() {
		return nil, ErrEmptyPath
	}

	var segs []Segment
	subpath := -1
	first := -1 // first segment id of the current subpath
	var start, cur Point

	add := func(c Curve) {
		id := len(segs)
		prev := -1
		if first != -1 && first < id {
			prev = id - 1
			segs[prev].Next = id
		}
		segs = append(segs, Segment{ID: id, Curve: c, Subpath: subpath, Prev: prev, Next: -1})
		if first == -1 || first == id {
			first = id
		}
		cur = c.End
	}

	i := 0
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd:
			subpath++
			first = len(segs)
			start = Point{p.d[i+0], p.d[i+1]}
			cur = start
			i += 2
		case LineToCmd:
			end := Point{p.d[i+0], p.d[i+1]}
			if !cur.Equals(end) {
				add(Line(cur, end))
			}
			i += 2
		case QuadToCmd:
			add(Quad(cur, Point{p.d[i+0], p.d[i+1]}, Point{p.d[i+2], p.d[i+3]}))
			i += 4
		case CubeToCmd:
			add(Cube(cur, Point{p.d[i+0], p.d[i+1]}, Point{p.d[i+2], p.d[i+3]}, Point{p.d[i+4], p.d[i+5]}))
			i += 6
		case ArcToCmd:
			end := Point{p.d[i+5], p.d[i+6]}
			add(Curve{Kind: ArcKind, Start: cur, End: end})
			i += 7
		case CloseCmd:
			if !cur.Equals(start) {
				add(Line(cur, start))
			}
			if first < len(segs) {
				// make the chain circular
				last := len(segs) - 1
				segs[last].Next = first
				segs[first].Prev = last
			}
			cur = start
			first = len(segs)
		}
	}

	if len(segs) == 0 {
		return nil, ErrEmptyPath
	}
	return segs, nil
}
