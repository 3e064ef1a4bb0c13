package snap

import (
	"math"
	"testing"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

func TestIndexNearest(t *testing.T) {
	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(10, 10), Type: TypeEndpoint, SourceShapeID: "a"})
	ix.Insert(Point{Position: geom.Pt(14, 10), Type: TypeMidpoint, SourceShapeID: "b"})
	ix.Insert(Point{Position: geom.Pt(100, 100), Type: TypeEndpoint, SourceShapeID: "c"})

	active := NewTypeSet(TypeEndpoint, TypeMidpoint)

	got, ok := ix.Nearest(geom.Pt(13, 10), 8, active, nil)
	if !ok {
		t.Fatal("Nearest() found nothing")
	}
	if got.SourceShapeID != "b" {
		t.Errorf("Nearest() = %s, want b (closest)", got.SourceShapeID)
	}
}

func TestIndexNearestFiltersTypeAndExclusion(t *testing.T) {
	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(10, 10), Type: TypeMidpoint, SourceShapeID: "a"})
	ix.Insert(Point{Position: geom.Pt(12, 10), Type: TypeEndpoint, SourceShapeID: "b"})

	onlyEndpoints := NewTypeSet(TypeEndpoint)
	got, ok := ix.Nearest(geom.Pt(10, 10), 8, onlyEndpoints, nil)
	if !ok || got.SourceShapeID != "b" {
		t.Errorf("type filter: got %v ok=%v, want shape b", got, ok)
	}

	_, ok = ix.Nearest(geom.Pt(10, 10), 8, onlyEndpoints, map[string]bool{"b": true})
	if ok {
		t.Error("excluded source should not match")
	}
}

func TestIndexBucketsNegativeCoordinates(t *testing.T) {
	// Cell keying uses floor, so points just below zero land one cell
	// over from points just above it; the ring scan must still find them.
	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(-1, -1), Type: TypeEndpoint, SourceShapeID: "a"})

	got, ok := ix.Nearest(geom.Pt(1, 1), 4, NewTypeSet(TypeEndpoint), nil)
	if !ok || got.SourceShapeID != "a" {
		t.Errorf("cross-cell query at origin: got %v ok=%v, want shape a", got, ok)
	}
}

func TestIndexNearestOutsideRadius(t *testing.T) {
	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(50, 0), Type: TypeEndpoint})

	if _, ok := ix.Nearest(geom.Pt(0, 0), 8, NewTypeSet(TypeEndpoint), nil); ok {
		t.Error("point outside radius should not match")
	}
}

func TestNearestGridPoint(t *testing.T) {
	g, d := NearestGridPoint(geom.Pt(12, 19), 10)
	if g != geom.Pt(10, 20) {
		t.Errorf("NearestGridPoint() = %v, want (10,20)", g)
	}
	want := math.Hypot(2, 1)
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", d, want)
	}
}

func TestDetectorMinimumDistanceWins(t *testing.T) {
	// A dragged corner 3 units from target corner A and 6 units from
	// target midpoint B: A must win.
	cfg := Config{
		Enabled:     true,
		Radius:      8,
		Mode:        ModeFixed,
		ActiveTypes: NewTypeSet(TypeEndpoint, TypeMidpoint),
	}
	d := NewDetector(&cfg)

	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(3, 0), Type: TypeEndpoint, SourceShapeID: "a"})
	ix.Insert(Point{Position: geom.Pt(0, 6), Type: TypeMidpoint, SourceShapeID: "b"})

	candidates := []shape.Feature{{Kind: shape.FeatureEndpoint, Position: geom.Pt(0, 0)}}
	m, ok := d.Detect(candidates, ix, nil, 1)
	if !ok {
		t.Fatal("Detect() found nothing")
	}
	if m.Target.SourceShapeID != "a" {
		t.Errorf("Detect() chose %s, want a (minimum distance)", m.Target.SourceShapeID)
	}
	if m.Delta != geom.Pt(3, 0) {
		t.Errorf("Delta = %v, want (3,0)", m.Delta)
	}
}

func TestDetectorDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	d := NewDetector(&cfg)

	ix := NewIndex(16)
	ix.Insert(Point{Position: geom.Pt(1, 0), Type: TypeEndpoint})

	candidates := []shape.Feature{{Kind: shape.FeatureEndpoint, Position: geom.Pt(0, 0)}}
	if _, ok := d.Detect(candidates, ix, nil, 1); ok {
		t.Error("disabled detector should never match")
	}
}

func TestDetectorGridSnap(t *testing.T) {
	cfg := Config{
		Enabled:     true,
		Radius:      5,
		GridSpacing: 10,
		ActiveTypes: NewTypeSet(TypeGrid),
	}
	d := NewDetector(&cfg)

	candidates := []shape.Feature{{Kind: shape.FeatureEndpoint, Position: geom.Pt(11, 22)}}
	m, ok := d.Detect(candidates, NewIndex(16), nil, 1)
	if !ok {
		t.Fatal("grid snap found nothing")
	}
	if m.Target.Type != TypeGrid || m.Target.Position != geom.Pt(10, 20) {
		t.Errorf("grid target = %v, want (10,20)", m.Target)
	}
}

func TestDetectorBuildIndexSkipsLockedAndExcluded(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDetector(&cfg)

	locked := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 10)})
	locked.Locked = true
	moving := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(20, 0), geom.Pt(30, 10)})
	other := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(40, 0), geom.Pt(50, 10)})

	ix := d.BuildIndex(
		[]*shape.Shape{locked, moving, other},
		map[string]bool{moving.ID: true},
	)

	// Only "other" contributes: 4 corners + 4 midpoints + center.
	if ix.Len() != 9 {
		t.Errorf("index holds %d points, want 9 (one shape's features)", ix.Len())
	}
}

func TestDetectorEdgeSnap(t *testing.T) {
	cfg := Config{
		Enabled:     true,
		Radius:      5,
		ActiveTypes: NewTypeSet(TypeEdge),
	}
	d := NewDetector(&cfg)

	wall := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(0, 0), geom.Pt(40, 40)})
	ix := d.BuildIndex([]*shape.Shape{wall}, nil)

	// 3 units above the top edge, away from any corner or midpoint:
	// the match is the perpendicular projection onto the edge itself.
	candidates := []shape.Feature{{Kind: shape.FeatureEndpoint, Position: geom.Pt(17, -3)}}
	m, ok := d.Detect(candidates, ix, nil, 1)
	if !ok {
		t.Fatal("edge snap found nothing")
	}
	if m.Target.Type != TypeEdge || m.Target.Position != geom.Pt(17, 0) {
		t.Errorf("target = %v, want edge point (17,0)", m.Target)
	}
	if m.Delta != geom.Pt(0, 3) {
		t.Errorf("Delta = %v, want (0,3)", m.Delta)
	}
}

func TestDetectorIntersections(t *testing.T) {
	cfg := Config{
		Enabled:     true,
		Radius:      5,
		ActiveTypes: NewTypeSet(TypeIntersection),
	}
	d := NewDetector(&cfg)

	cross1 := shape.New(shape.KindLine, []geom.Point{geom.Pt(-10, 0), geom.Pt(10, 0)})
	cross2 := shape.New(shape.KindLine, []geom.Point{geom.Pt(0, -10), geom.Pt(0, 10)})

	ix := d.BuildIndex([]*shape.Shape{cross1, cross2}, nil)
	candidates := []shape.Feature{{Kind: shape.FeatureEndpoint, Position: geom.Pt(1, 1)}}
	m, ok := d.Detect(candidates, ix, nil, 1)
	if !ok {
		t.Fatal("intersection snap found nothing")
	}
	if m.Target.Type != TypeIntersection || m.Target.Position != geom.Pt(0, 0) {
		t.Errorf("target = %v, want intersection at origin", m.Target)
	}
}

func TestEffectiveRadiusAdaptive(t *testing.T) {
	cfg := Config{Radius: 8, Mode: ModeAdaptive}

	if got := cfg.EffectiveRadius(2); got != 4 {
		t.Errorf("EffectiveRadius(2) = %v, want 4", got)
	}
	if got := cfg.EffectiveRadius(0); got != 8 {
		t.Errorf("EffectiveRadius(0) = %v, want fallback 8", got)
	}
	// Clamped low.
	if got := cfg.EffectiveRadius(1000); got != 0.5 {
		t.Errorf("EffectiveRadius(1000) = %v, want clamp 0.5", got)
	}

	fixed := Config{Radius: 8, Mode: ModeFixed}
	if got := fixed.EffectiveRadius(2); got != 8 {
		t.Errorf("fixed EffectiveRadius = %v, want 8", got)
	}
}

func TestForTool(t *testing.T) {
	if !ForTool("measure")[TypeIntersection] {
		t.Error("measure tool should enable intersection snapping")
	}
	if ForTool("rectangle")[TypeIntersection] {
		t.Error("rectangle tool should not enable intersection snapping")
	}
	if !ForTool("rectangle")[TypeMidpoint] {
		t.Error("rectangle tool should enable midpoint snapping")
	}
}

func TestTypeSetRoundTrip(t *testing.T) {
	s := NewTypeSet(TypeMidpoint, TypeGrid, TypeCenter)
	arr := s.Sorted()
	back := FromSlice(arr)
	if len(back) != 3 || !back[TypeGrid] || !back[TypeMidpoint] || !back[TypeCenter] {
		t.Errorf("round trip lost types: %v", back)
	}
	// Sorted output is deterministic.
	if arr[0] != TypeCenter || arr[1] != TypeGrid || arr[2] != TypeMidpoint {
		t.Errorf("Sorted() = %v, want center,grid,midpoint", arr)
	}
}

func TestDetectGuides(t *testing.T) {
	moving := geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	aligned := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(20, 0), geom.Pt(30, 10)})
	unrelated := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(55, 77), geom.Pt(63, 91)})

	guides, _ := DetectGuides(moving, "m", []*shape.Shape{aligned, unrelated}, 1)

	var horizontals []Guide
	for _, g := range guides {
		if g.Orientation == Horizontal {
			horizontals = append(horizontals, g)
		}
	}
	// Top, center and bottom all align with the aligned shape.
	if len(horizontals) != 3 {
		t.Errorf("horizontal guides = %d, want 3", len(horizontals))
	}
	for _, g := range horizontals {
		if g.From.X != 0 || g.To.X != 30 {
			t.Errorf("guide extent = %v..%v, want spanning both boxes", g.From, g.To)
		}
	}
}

func TestDetectSpacingEvenGaps(t *testing.T) {
	moving := geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	a := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(15, 0), geom.Pt(25, 10)})
	b := shape.New(shape.KindRectangle, []geom.Point{geom.Pt(30, 0), geom.Pt(40, 10)})

	_, spacing := DetectGuides(moving, "m", []*shape.Shape{a, b}, 1)
	if len(spacing) == 0 {
		t.Fatal("evenly gapped row should report spacing")
	}
	if spacing[0].Distance != 5 {
		t.Errorf("spacing distance = %v, want 5", spacing[0].Distance)
	}
}
