package report

import (
	"encoding/json"
	"io"
)

// jsonFormat writes Data as indented JSON.
type jsonFormat struct{}

func (f *jsonFormat) Generate(data *Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (f *jsonFormat) Name() string {
	return "json"
}

func (f *jsonFormat) Description() string {
	return "Machine-readable JSON with suggestions, outcomes and scores"
}
