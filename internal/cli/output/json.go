package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes indented JSON for scripting. HTML escaping is off:
// track titles ("Drum & Bass") and URLs with query strings must survive
// verbatim for tools such as jq.
type JSONFormatter struct{}

// Format writes data as one indented JSON document.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
