package arrange

import "sort"

// Splitting segments at their intersections. Afterwards segments meet other
// segments only at their endpoints, which is what face discovery relies on.

// insideParams sorts the cut positions and keeps those strictly inside the
// segment, merging positions within ParamEpsilon of one another. Cuts at a
// segment's own endpoints would produce degenerate pieces and are already
// represented by the endpoint itself.
func insideParams(cuts []cutPoint) []cutPoint {
	sort.Slice(cuts, func(i, j int) bool {
		return cuts[i].T < cuts[j].T
	})

	kept := cuts[:0]
	for _, c := range cuts {
		if c.T <= ParamEpsilon || 1.0-ParamEpsilon <= c.T {
			continue
		}
		if 0 < len(kept) && c.T-kept[len(kept)-1].T < ParamEpsilon {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// splitSegments cuts every segment at its intersection parameters and relinks
// the subpath chains over the pieces. It returns the pieces and, per original
// segment, the ordered piece ids. The pieces of one segment share their cut
// endpoints bit-for-bit: both take the intersection's coordinate, so the
// vertex snapping later on cannot pull them apart.
func splitSegments(segs []Segment, cuts [][]cutPoint) ([]SplitSegment, [][]int) {
	var splits []SplitSegment
	pieces := make([][]int, len(segs)) // original id -> its pieces in order

	for _, seg := range segs {
		inside := insideParams(cuts[seg.ID])

		t0 := 0.0
		start := seg.Curve.Start
		for k := 0; k <= len(inside); k++ {
			t1, end := 1.0, seg.Curve.End
			if k < len(inside) {
				t1, end = inside[k].T, inside[k].Pos
			}

			c := seg.Curve
			if seg.Curve.Kind != ArcKind {
				c = seg.Curve.SplitRange(t0, t1)
			}
			c.Start = start
			c.End = end

			id := len(splits)
			splits = append(splits, SplitSegment{
				Segment: Segment{ID: id, Curve: c, Subpath: seg.Subpath, Prev: -1, Next: -1},
				Parent:  seg.ID,
			})
			pieces[seg.ID] = append(pieces[seg.ID], id)

			t0 = t1
			start = end
		}
	}

	// relink: consecutive pieces of one segment chain internally, the outer
	// pieces connect to the neighbouring originals' pieces
	for _, seg := range segs {
		ps := pieces[seg.ID]
		for k := 0; k+1 < len(ps); k++ {
			splits[ps[k]].Next = ps[k+1]
			splits[ps[k+1]].Prev = ps[k]
		}
		if seg.Prev != -1 {
			prev := pieces[seg.Prev]
			splits[ps[0]].Prev = prev[len(prev)-1]
		}
		if seg.Next != -1 {
			next := pieces[seg.Next]
			splits[ps[len(ps)-1]].Next = next[0]
		}
	}
	return splits, pieces
}
