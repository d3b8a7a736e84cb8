package wire

import (
	"encoding/json"

	"github.com/bft-labs/dbgcast/pkg/vars"
)

// Entry is one complete snapshot payload. Field names are intentionally
// short for wire compactness; the front end expands them.
type Entry struct {
	App       string       `json:"a,omitempty"`
	Client    string       `json:"c,omitempty"`
	Threads   []Thread     `json:"t"`
	Frames    []Frame      `json:"s"`
	Variables []vars.Entry `json:"v"`
}

// Thread identifies one thread of the instrumented program. When no
// thread source is configured a single synthetic thread is sent.
type Thread struct {
	ID   int    `json:"i"`
	Name string `json:"n"`
}

// Frame is one stack frame as presented to the front end. File is
// relativized against the configured script root for display; Name is
// the bare file name.
type Frame struct {
	Index    int     `json:"i"`
	File     string  `json:"f,omitempty"`
	Name     string  `json:"fn,omitempty"`
	Line     int     `json:"l,omitempty"`
	LineText string  `json:"ln,omitempty"`
	Function string  `json:"n,omitempty"`
	Scopes   []Scope `json:"s"`
}

// Scope is a synthetic nested scope attached to every frame.
type Scope struct {
	Name string `json:"n"`
	Ref  int    `json:"r"`
}

// Encode serializes an entry to its canonical JSON form.
func Encode(e *Entry) ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a JSON payload back into an entry. Used by the listener
// side of the protocol.
func Decode(b []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
