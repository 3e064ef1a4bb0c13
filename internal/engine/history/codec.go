package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrCorruptSnapshot indicates a serialized snapshot that fails
// structural validation. The caller aborts the restore and leaves the
// stack unchanged.
var ErrCorruptSnapshot = errors.New("corrupt history snapshot")

// Encode serializes a snapshot to its canonical JSON form.
func Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Decode validates and deserializes a snapshot. Validation happens
// before unmarshalling: the document must be well-formed JSON and carry
// a shapes array, otherwise the restore is refused outright.
func Decode(data []byte) (Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return Snapshot{}, fmt.Errorf("%w: invalid JSON", ErrCorruptSnapshot)
	}
	shapes := gjson.GetBytes(data, "shapes")
	if !shapes.Exists() || !shapes.IsArray() {
		return Snapshot{}, fmt.Errorf("%w: missing shapes array", ErrCorruptSnapshot)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return s, nil
}

// uiPrefPaths are the toolConfig fields that track current UI
// preference rather than document state.
var uiPrefPaths = []string{
	"toolConfig.activeTool",
	"toolConfig.snapEnabled",
	"toolConfig.showDimensions",
}

// preserveUIPrefs overwrites the restored snapshot's UI-preference
// fields with the values from the snapshot that was current before the
// restore.
func preserveUIPrefs(restored, current []byte) ([]byte, error) {
	out := restored
	for _, path := range uiPrefPaths {
		v := gjson.GetBytes(current, path)
		if !v.Exists() {
			continue
		}
		var err error
		out, err = sjson.SetBytes(out, path, v.Value())
		if err != nil {
			return nil, fmt.Errorf("preserve %s: %w", path, err)
		}
	}
	return out, nil
}
