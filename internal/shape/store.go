package shape

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Store errors.
var (
	ErrShapeNotFound = errors.New("shape not found")
	ErrLayerNotFound = errors.New("layer not found")
)

// Layer groups shapes for visibility and organization.
type Layer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Store is the single authority owning the shape collection, the
// selection, and the layer list. All engines operate through it rather
// than closing over ambient state.
type Store struct {
	mu sync.RWMutex

	order     []string          // insertion/z order of shape ids
	shapes    map[string]*Shape // id -> shape
	selection map[string]bool   // id -> selected
	layers    []*Layer
	active    string // active layer id
}

// NewStore creates a store with a single default layer.
func NewStore() *Store {
	base := &Layer{ID: uuid.NewString(), Name: "Layer 1", Visible: true}
	return &Store{
		shapes:    make(map[string]*Shape),
		selection: make(map[string]bool),
		layers:    []*Layer{base},
		active:    base.ID,
	}
}

// Add inserts a shape, assigning it to the active layer if it has none.
func (st *Store) Add(s *Shape) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s.LayerID == "" {
		s.LayerID = st.active
	}
	if _, exists := st.shapes[s.ID]; !exists {
		st.order = append(st.order, s.ID)
	}
	st.shapes[s.ID] = s
}

// Remove deletes a shape and drops it from the selection.
func (st *Store) Remove(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.shapes[id]; !ok {
		return ErrShapeNotFound
	}
	delete(st.shapes, id)
	delete(st.selection, id)
	for i, sid := range st.order {
		if sid == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the shape with the given id, or nil.
func (st *Store) Get(id string) *Shape {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.shapes[id]
}

// All returns the shapes in z order.
func (st *Store) All() []*Shape {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*Shape, 0, len(st.order))
	for _, id := range st.order {
		if s := st.shapes[id]; s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Visible returns the shapes on visible layers, in z order.
func (st *Store) Visible() []*Shape {
	st.mu.RLock()
	defer st.mu.RUnlock()

	visible := make(map[string]bool, len(st.layers))
	for _, l := range st.layers {
		visible[l.ID] = l.Visible
	}
	out := make([]*Shape, 0, len(st.order))
	for _, id := range st.order {
		s := st.shapes[id]
		if s != nil && visible[s.LayerID] {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of shapes.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.shapes)
}

// Select adds a shape to the selection.
func (st *Store) Select(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.shapes[id]; !ok {
		return ErrShapeNotFound
	}
	st.selection[id] = true
	return nil
}

// SelectOnly replaces the selection with the given shape.
func (st *Store) SelectOnly(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.shapes[id]; !ok {
		return ErrShapeNotFound
	}
	st.selection = map[string]bool{id: true}
	return nil
}

// Deselect removes a shape from the selection.
func (st *Store) Deselect(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.selection, id)
}

// ClearSelection empties the selection.
func (st *Store) ClearSelection() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.selection = make(map[string]bool)
}

// Selection returns the selected shape ids in z order.
func (st *Store) Selection() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]string, 0, len(st.selection))
	for _, id := range st.order {
		if st.selection[id] {
			out = append(out, id)
		}
	}
	return out
}

// SetSelection replaces the selection wholesale. Unknown ids are ignored.
func (st *Store) SetSelection(ids []string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := st.shapes[id]; ok {
			st.selection[id] = true
		}
	}
}

// IsSelected reports whether the shape is selected.
func (st *Store) IsSelected(id string) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.selection[id]
}

// SelectionCount returns the number of selected shapes.
func (st *Store) SelectionCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.selection)
}

// Group assigns a fresh group id to the given shapes and returns it.
func (st *Store) Group(ids []string) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	gid := uuid.NewString()
	for _, id := range ids {
		s, ok := st.shapes[id]
		if !ok {
			return "", ErrShapeNotFound
		}
		s.GroupID = gid
	}
	return gid, nil
}

// Ungroup clears the group id of every member of the group.
func (st *Store) Ungroup(groupID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, s := range st.shapes {
		if s.GroupID == groupID {
			s.GroupID = ""
		}
	}
}

// GroupMembers returns the ids of every shape in the group, in z order.
func (st *Store) GroupMembers(groupID string) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	var out []string
	for _, id := range st.order {
		if s := st.shapes[id]; s != nil && s.GroupID == groupID {
			out = append(out, id)
		}
	}
	return out
}

// AddLayer appends a new visible layer and returns it.
func (st *Store) AddLayer(name string) *Layer {
	st.mu.Lock()
	defer st.mu.Unlock()

	l := &Layer{ID: uuid.NewString(), Name: name, Visible: true}
	st.layers = append(st.layers, l)
	return l
}

// Layers returns the layer list in order.
func (st *Store) Layers() []*Layer {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*Layer, len(st.layers))
	copy(out, st.layers)
	return out
}

// ActiveLayer returns the active layer id.
func (st *Store) ActiveLayer() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.active
}

// SetActiveLayer switches the active layer.
func (st *Store) SetActiveLayer(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, l := range st.layers {
		if l.ID == id {
			st.active = id
			return nil
		}
	}
	return ErrLayerNotFound
}

// Replace swaps the entire store contents. Used by history restores.
func (st *Store) Replace(shapes []*Shape, selection []string, layers []*Layer, activeLayer string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.order = st.order[:0]
	st.shapes = make(map[string]*Shape, len(shapes))
	for _, s := range shapes {
		st.order = append(st.order, s.ID)
		st.shapes[s.ID] = s
	}
	st.selection = make(map[string]bool, len(selection))
	for _, id := range selection {
		if _, ok := st.shapes[id]; ok {
			st.selection[id] = true
		}
	}
	if len(layers) > 0 {
		st.layers = layers
	}
	if activeLayer != "" {
		st.active = activeLayer
	}
}

// Clear removes every shape and selection entry, keeping layers.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.order = nil
	st.shapes = make(map[string]*Shape)
	st.selection = make(map[string]bool)
}
