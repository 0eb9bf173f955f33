package surface

import (
	"encoding/json"
	"io"

	"github.com/taskrank/taskrank/pkg/scoring"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *scoring.BatchResult) error {
	return encode(w, result)
}

func (r *JSONRenderer) RenderSuggestions(w io.Writer, s *scoring.Suggestions) error {
	return encode(w, s)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
