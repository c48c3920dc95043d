package export

import (
	"encoding/json"
	"io"

	"github.com/rshade/ecotrack/internal/footprint"
)

// JSON writes the full state as indented JSON. A nil state writes an empty one.
func JSON(w io.Writer, state *footprint.AppState) error {
	if state == nil {
		state = footprint.NewAppState()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
