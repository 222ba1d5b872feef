// Package responseformat writes API responses as JSON or MessagePack.
package responseformat

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResponse writes data with the given status. JSON is the default
// format; MessagePack is used when format=msgpack is specified.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	if req.URL.Query().Get("format") == FormatMsgPack {
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.WriteHeader(status)
		return Encode(w, FormatMsgPack, data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return Encode(w, FormatJSON, data)
}

// WriteError writes {"error": msg} in the requested format
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, msg string) error {
	return f.WriteResponse(w, req, status, map[string]string{"error": msg})
}

// Encode writes data to w in the named format
func Encode(w io.Writer, format string, data any) error {
	if format == FormatMsgPack {
		encoder := msgpack.NewEncoder(w)
		encoder.SetCustomStructTag("json") // Use json tags for MessagePack
		return encoder.Encode(data)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
