package history

import (
	"github.com/vexcanvas/vexcanvas/internal/shape"
	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// ToolConfig is the tool configuration carried in a snapshot.
//
// The UI-preference fields (ActiveTool, SnapEnabled, ShowDimensions)
// are recorded but deliberately overwritten with their pre-undo values
// on restore, so undo affects shape and selection state without
// flipping transient UI toggles under the user.
type ToolConfig struct {
	ActiveTool      string      `json:"activeTool"`
	SnapEnabled     bool        `json:"snapEnabled"`
	SnapRadius      float64     `json:"snapRadius"`
	SnapMode        snap.Mode   `json:"snapMode"`
	GridSpacing     float64     `json:"gridSpacing"`
	ActiveSnapTypes []snap.Type `json:"activeSnapTypes"`
	ShowDimensions  bool        `json:"showDimensions"`
}

// SnapTypeSet restores the active-type set from its serialized array
// form.
func (c ToolConfig) SnapTypeSet() snap.TypeSet {
	return snap.FromSlice(c.ActiveSnapTypes)
}

// Snapshot is a full structural copy of editable state: shapes,
// selection, layers and tool configuration. Transient session, hover
// and drag state is excluded by construction.
type Snapshot struct {
	Shapes      []*shape.Shape `json:"shapes"`
	Selection   []string       `json:"selection"`
	Layers      []*shape.Layer `json:"layers"`
	ActiveLayer string         `json:"activeLayer"`
	ToolConfig  ToolConfig     `json:"toolConfig"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Shapes = make([]*shape.Shape, len(s.Shapes))
	for i, sh := range s.Shapes {
		out.Shapes[i] = sh.Clone()
	}
	out.Selection = append([]string(nil), s.Selection...)
	out.Layers = make([]*shape.Layer, len(s.Layers))
	for i, l := range s.Layers {
		cl := *l
		out.Layers[i] = &cl
	}
	out.ToolConfig.ActiveSnapTypes = append([]snap.Type(nil), s.ToolConfig.ActiveSnapTypes...)
	return out
}
