package shape

import (
	"math"
	"testing"

	"github.com/vexcanvas/vexcanvas/internal/geom"
)

func rect2(x1, y1, x2, y2 float64) *Shape {
	return New(KindRectangle, []geom.Point{geom.Pt(x1, y1), geom.Pt(x2, y2)})
}

func TestNewAssignsID(t *testing.T) {
	a := rect2(0, 0, 10, 10)
	b := rect2(0, 0, 10, 10)
	if a.ID == "" || b.ID == "" {
		t.Fatal("New() should assign ids")
	}
	if a.ID == b.ID {
		t.Error("ids should be unique")
	}
	if a.Modified == 0 {
		t.Error("Modified should be stamped")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := rect2(0, 0, 10, 10)
	s.Rotation = &Rotation{Angle: 1, Center: geom.Pt(5, 5)}

	c := s.Clone()
	c.Points[0].X = 99
	c.Rotation.Angle = 2

	if s.Points[0].X == 99 {
		t.Error("Clone shares point storage")
	}
	if s.Rotation.Angle == 2 {
		t.Error("Clone shares rotation storage")
	}
}

func TestRectangleEncodings(t *testing.T) {
	two := rect2(0, 0, 10, 10)
	if !two.IsTwoPointRectangle() || two.IsFourPointRectangle() {
		t.Error("2-point rectangle misclassified")
	}

	four := New(KindRectangle, []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
	})
	if four.IsTwoPointRectangle() || !four.IsFourPointRectangle() {
		t.Error("4-point rectangle misclassified")
	}
}

func TestTwoPointRectangleFeatures(t *testing.T) {
	s := rect2(0, 0, 10, 10)
	features := s.Features()

	// 4 corners + 4 edge midpoints + centroid.
	if len(features) != 9 {
		t.Fatalf("Features() returned %d features, want 9", len(features))
	}

	var center *Feature
	midpoints := 0
	for i := range features {
		switch features[i].Kind {
		case FeatureCenter:
			center = &features[i]
		case FeatureMidpoint:
			midpoints++
		}
	}
	if center == nil || center.Position != geom.Pt(5, 5) {
		t.Errorf("center feature = %v, want (5,5)", center)
	}
	if midpoints != 4 {
		t.Errorf("midpoint count = %d, want 4", midpoints)
	}
}

func TestLineFeaturesIncludeMidpoint(t *testing.T) {
	s := New(KindLine, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)})
	features := s.Features()

	found := false
	for _, f := range features {
		if f.Kind == FeatureMidpoint && f.Position == geom.Pt(5, 0) {
			found = true
		}
	}
	if !found {
		t.Error("line should expose its segment midpoint")
	}
}

func TestPolygonFeaturesClosingEdge(t *testing.T) {
	s := New(KindPolygon, []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10),
	})
	features := s.Features()

	// The closing edge (10,10)-(0,0) contributes midpoint (5,5).
	found := false
	for _, f := range features {
		if f.Kind == FeatureMidpoint && f.Position == geom.Pt(5, 5) {
			found = true
		}
	}
	if !found {
		t.Error("polygon should expose its closing-edge midpoint")
	}
}

func TestStoreAddSelect(t *testing.T) {
	st := NewStore()
	a := rect2(0, 0, 5, 5)
	b := rect2(10, 10, 20, 20)
	st.Add(a)
	st.Add(b)

	if st.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", st.Count())
	}

	if err := st.SelectOnly(a.ID); err != nil {
		t.Fatalf("SelectOnly() error = %v", err)
	}
	if err := st.Select(b.ID); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	sel := st.Selection()
	if len(sel) != 2 || sel[0] != a.ID || sel[1] != b.ID {
		t.Errorf("Selection() = %v, want [%s %s] in z order", sel, a.ID, b.ID)
	}

	if err := st.Select("missing"); err != ErrShapeNotFound {
		t.Errorf("Select(missing) error = %v, want ErrShapeNotFound", err)
	}
}

func TestStoreRemove(t *testing.T) {
	st := NewStore()
	a := rect2(0, 0, 5, 5)
	st.Add(a)
	_ = st.Select(a.ID)

	if err := st.Remove(a.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if st.Get(a.ID) != nil {
		t.Error("Get() after Remove should be nil")
	}
	if st.SelectionCount() != 0 {
		t.Error("Remove should drop the shape from the selection")
	}
	if err := st.Remove(a.ID); err != ErrShapeNotFound {
		t.Errorf("second Remove error = %v, want ErrShapeNotFound", err)
	}
}

func TestStoreGrouping(t *testing.T) {
	st := NewStore()
	a := rect2(0, 0, 5, 5)
	b := rect2(10, 0, 15, 5)
	c := rect2(20, 0, 25, 5)
	st.Add(a)
	st.Add(b)
	st.Add(c)

	gid, err := st.Group([]string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}

	members := st.GroupMembers(gid)
	if len(members) != 2 {
		t.Fatalf("GroupMembers() = %v, want 2 members", members)
	}

	st.Ungroup(gid)
	if got := st.GroupMembers(gid); len(got) != 0 {
		t.Errorf("GroupMembers() after Ungroup = %v, want empty", got)
	}
}

func TestStoreLayerVisibility(t *testing.T) {
	st := NewStore()
	hidden := st.AddLayer("hidden")
	hidden.Visible = false

	a := rect2(0, 0, 5, 5) // default layer, visible
	st.Add(a)
	b := rect2(10, 0, 15, 5)
	b.LayerID = hidden.ID
	st.Add(b)

	vis := st.Visible()
	if len(vis) != 1 || vis[0].ID != a.ID {
		t.Errorf("Visible() = %v shapes, want only the default-layer shape", len(vis))
	}

	if err := st.SetActiveLayer(hidden.ID); err != nil {
		t.Errorf("SetActiveLayer() error = %v", err)
	}
	if err := st.SetActiveLayer("missing"); err != ErrLayerNotFound {
		t.Errorf("SetActiveLayer(missing) error = %v, want ErrLayerNotFound", err)
	}
}

func TestRepairDropsNonFinite(t *testing.T) {
	good := rect2(0, 0, 10, 10)
	bad := New(KindPolyline, []geom.Point{geom.Pt(0, 0), geom.Pt(math.NaN(), 1)})

	out, res := Repair([]*Shape{good, bad})
	if len(out) != 1 || out[0].ID != good.ID {
		t.Fatalf("Repair kept %d shapes, want only the finite one", len(out))
	}
	if len(res.Dropped) != 1 || res.Dropped[0] != bad.ID {
		t.Errorf("Dropped = %v, want [%s]", res.Dropped, bad.ID)
	}
}

func TestRepairPreservesRectangleEncoding(t *testing.T) {
	two := rect2(0, 0, 10, 10)
	four := New(KindRectangle, []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
	})

	out, _ := Repair([]*Shape{two, four})
	if len(out[0].Points) != 2 {
		t.Errorf("2-point rectangle became %d points", len(out[0].Points))
	}
	if len(out[1].Points) != 4 {
		t.Errorf("4-point rectangle became %d points", len(out[1].Points))
	}
}

func TestRepairStripsBadRotation(t *testing.T) {
	s := rect2(0, 0, 10, 10)
	s.Rotation = &Rotation{Angle: math.NaN(), Center: geom.Pt(5, 5)}

	out, res := Repair([]*Shape{s})
	if out[0].Rotation != nil {
		t.Error("non-finite rotation should be stripped")
	}
	if len(res.Repaired) != 1 {
		t.Errorf("Repaired = %v, want one entry", res.Repaired)
	}
}

func TestValidEncoding(t *testing.T) {
	tests := []struct {
		name string
		s    *Shape
		want bool
	}{
		{"rect 2pt", rect2(0, 0, 1, 1), true},
		{"rect 3pt", New(KindRectangle, make([]geom.Point, 3)), false},
		{"rect 4pt", New(KindRectangle, make([]geom.Point, 4)), true},
		{"rect 5pt", New(KindRectangle, make([]geom.Point, 5)), false},
		{"line 2pt", New(KindLine, make([]geom.Point, 2)), true},
		{"polygon 2pt", New(KindPolygon, make([]geom.Point, 2)), false},
		{"polyline 2pt", New(KindPolyline, make([]geom.Point, 2)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidEncoding(tt.s); got != tt.want {
				t.Errorf("ValidEncoding() = %v, want %v", got, tt.want)
			}
		})
	}
}
