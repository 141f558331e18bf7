package arrange

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned when the input path has no drawable segments.
	ErrEmptyPath = errors.New("empty path")

	// ErrUnsupportedArc is returned when a path contains an elliptical arc,
	// which the intersection engine does not handle.
	ErrUnsupportedArc = errors.New("elliptical arcs are not supported")

	// ErrInconsistentTopology is returned when the half-edge structure turns
	// out corrupt while walking the faces.
	ErrInconsistentTopology = errors.New("inconsistent arrangement topology")
)

// Observer receives the intermediate results of each processing stage. All
// methods are called at most once per ProcessPath call; the slices are the
// live results and must not be modified.
type Observer interface {
	ObserveSegments(segs []Segment)
	ObserveSplits(splits []SplitSegment)
	ObserveRegions(regions []Region)
}

// Options control how a path is processed.
type Options struct {
	// FillRule decides which faces are solid and which are holes. The zero
	// value is NonZero.
	FillRule FillRule

	// Workers is the number of goroutines used for pairwise intersection.
	// Values below 2 keep the computation on the calling goroutine.
	Workers int

	// Observer, if set, is fed the result of every stage.
	Observer Observer
}

// Arrangement is the result of processing a path: the normalized input
// segments, their pieces after splitting at all intersections, and the
// classified regions those pieces bound. SegmentMap gives the ordered piece
// ids of every original segment.
type Arrangement struct {
	Segments   []Segment
	Splits     []SplitSegment
	SegmentMap [][]int
	Regions    []Region
}

// ProcessPath computes the planar arrangement of a path. The path's segments
// are intersected pairwise (and against themselves), split at every
// intersection, stitched into a half-edge structure, and its minimal faces
// classified as solids and holes under the fill rule.
func ProcessPath(p *Path, opts Options) (*Arrangement, error) {
	segs, err := segmentsFromPath(p)
	if err != nil {
		return nil, fmt.Errorf("segmenting path: %w", err)
	}
	if opts.Observer != nil {
		opts.Observer.ObserveSegments(segs)
	}

	cuts, err := findIntersections(segs, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("intersecting segments: %w", err)
	}

	splits, segmentMap := splitSegments(segs, cuts)
	if opts.Observer != nil {
		opts.Observer.ObserveSplits(splits)
	}

	d := buildDCEL(splits)
	faces, err := d.faces()
	if err != nil {
		return nil, fmt.Errorf("walking faces: %w", err)
	}

	regions, err := buildRegions(d, faces, segs, opts.FillRule)
	if err != nil {
		return nil, fmt.Errorf("resolving regions: %w", err)
	}
	if opts.Observer != nil {
		opts.Observer.ObserveRegions(regions)
	}

	return &Arrangement{
		Segments:   segs,
		Splits:     splits,
		SegmentMap: segmentMap,
		Regions:    regions,
	}, nil
}
