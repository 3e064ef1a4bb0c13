package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func pointsAlmostEqual(a, b Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestPointRotateAround(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		center Point
		angle  float64
		want   Point
	}{
		{"quarter turn about origin", Pt(1, 0), Pt(0, 0), math.Pi / 2, Pt(0, 1)},
		{"half turn about origin", Pt(1, 0), Pt(0, 0), math.Pi, Pt(-1, 0)},
		{"quarter turn offset center", Pt(2, 1), Pt(1, 1), math.Pi / 2, Pt(1, 2)},
		{"zero angle", Pt(3, 4), Pt(1, 1), 0, Pt(3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.RotateAround(tt.center, tt.angle)
			if !pointsAlmostEqual(got, tt.want) {
				t.Errorf("RotateAround() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	got := Centroid(pts)
	if !pointsAlmostEqual(got, Pt(5, 5)) {
		t.Errorf("Centroid() = %v, want (5,5)", got)
	}

	if got := Centroid(nil); got != (Point{}) {
		t.Errorf("Centroid(nil) = %v, want zero point", got)
	}
}

func TestClosestOnSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)

	if got := ClosestOnSegment(Pt(4, 3), a, b); !pointsAlmostEqual(got, Pt(4, 0)) {
		t.Errorf("interior projection = %v, want (4,0)", got)
	}
	// Projections past an end clamp to that end.
	if got := ClosestOnSegment(Pt(-5, 2), a, b); !pointsAlmostEqual(got, Pt(0, 0)) {
		t.Errorf("clamped projection = %v, want (0,0)", got)
	}
	// Degenerate segment.
	if got := ClosestOnSegment(Pt(3, 1), Pt(2, 2), Pt(2, 2)); !pointsAlmostEqual(got, Pt(2, 2)) {
		t.Errorf("degenerate segment = %v, want (2,2)", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	if Pt(math.NaN(), 0).IsFinite() {
		t.Error("NaN point reported finite")
	}
	if Pt(0, math.Inf(1)).IsFinite() {
		t.Error("Inf point reported finite")
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints([]Point{Pt(3, 1), Pt(-2, 5), Pt(0, 0)})
	want := Rect{MinX: -2, MinY: 0, MaxX: 3, MaxY: 5}
	if r != want {
		t.Errorf("RectFromPoints() = %v, want %v", r, want)
	}
}

func TestRectDegenerate(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"normal", Rect{0, 0, 10, 10}, false},
		{"zero width", Rect{0, 0, 0, 10}, true},
		{"zero height", Rect{0, 0, 10, 0}, true},
		{"extreme aspect", Rect{0, 0, 10000, 0.001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsDegenerate(eps); got != tt.want {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDominantAxis(t *testing.T) {
	if got := DominantAxis(Pt(6, 2)); got != AxisHorizontal {
		t.Errorf("DominantAxis(6,2) = %v, want horizontal", got)
	}
	if got := DominantAxis(Pt(1, -7)); got != AxisVertical {
		t.Errorf("DominantAxis(1,-7) = %v, want vertical", got)
	}
	if got := DominantAxis(Pt(3, 3)); got != AxisHorizontal {
		t.Errorf("DominantAxis tie = %v, want horizontal", got)
	}
}

func TestProjectOntoAxis(t *testing.T) {
	off := Pt(4, 7)
	if got := ProjectOntoAxis(off, AxisHorizontal); got != Pt(4, 0) {
		t.Errorf("horizontal projection = %v, want (4,0)", got)
	}
	if got := ProjectOntoAxis(off, AxisVertical); got != Pt(0, 7) {
		t.Errorf("vertical projection = %v, want (0,7)", got)
	}
	if got := ProjectOntoAxis(off, AxisNone); got != off {
		t.Errorf("no-lock projection = %v, want %v", got, off)
	}
}

func TestBoxScaleUniform(t *testing.T) {
	s := BoxScale{
		From: Rect{0, 0, 10, 10},
		To:   Rect{0, 0, 20, 20},
	}
	if !s.Uniform() {
		t.Fatal("2x/2x scale should be uniform")
	}

	// A point at the source center stays at the scaled center and
	// inter-point spacing doubles.
	got := s.Apply(Pt(5, 5))
	if !pointsAlmostEqual(got, Pt(10, 10)) {
		t.Errorf("Apply(center) = %v, want (10,10)", got)
	}

	a := s.Apply(Pt(2, 2))
	b := s.Apply(Pt(4, 2))
	if d := a.Distance(b); !almostEqual(d, 4) {
		t.Errorf("spacing after uniform 2x = %v, want 4", d)
	}
}

func TestBoxScaleNonUniform(t *testing.T) {
	s := BoxScale{
		From: Rect{0, 0, 10, 10},
		To:   Rect{0, 0, 20, 10},
	}
	if s.Uniform() {
		t.Fatal("2x/1x scale should not be uniform")
	}

	got := s.Apply(Pt(5, 5))
	if !pointsAlmostEqual(got, Pt(10, 5)) {
		t.Errorf("Apply() = %v, want (10,5)", got)
	}
}

func TestFlip(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(4, 2)}
	center := Pt(2, 1)

	h := FlipHorizontal(pts, center)
	if !pointsAlmostEqual(h[0], Pt(4, 0)) || !pointsAlmostEqual(h[1], Pt(0, 2)) {
		t.Errorf("FlipHorizontal() = %v", h)
	}

	v := FlipVertical(pts, center)
	if !pointsAlmostEqual(v[0], Pt(0, 2)) || !pointsAlmostEqual(v[1], Pt(4, 0)) {
		t.Errorf("FlipVertical() = %v", v)
	}
}

func TestTranslateAll(t *testing.T) {
	pts := []Point{Pt(1, 1), Pt(2, 2)}
	out := TranslateAll(pts, Pt(10, -1))
	if out[0] != Pt(11, 0) || out[1] != Pt(12, 1) {
		t.Errorf("TranslateAll() = %v", out)
	}
	// Input must not be mutated.
	if pts[0] != Pt(1, 1) {
		t.Error("TranslateAll mutated its input")
	}
}
