package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"sort"

	"github.com/rpupo63/devprojects-api/errs"
)

const maxBodyBytes = 1 << 20

// payload is a JSON object body, kept both raw (for typed decoding) and as a
// key -> value map (for guards that only look at which keys are present).
type payload struct {
	raw    []byte
	fields map[string]json.RawMessage
}

// readPayload decodes the request body. An empty body is an empty object.
func readPayload(r *http.Request) (*payload, error) {
	p := &payload{fields: map[string]json.RawMessage{}}
	if r.Body == nil || r.Body == http.NoBody {
		return p, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.NewMalformedPayloadError("request", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p.fields); err != nil {
		return nil, errs.NewInvalidJSONError(err)
	}
	if p.fields == nil {
		// a literal null body
		p.fields = map[string]json.RawMessage{}
	}
	p.raw = body
	return p, nil
}

func (p *payload) Has(key string) bool {
	_, ok := p.fields[key]
	return ok
}

func (p *payload) Len() int {
	return len(p.fields)
}

// Keys returns the payload keys in sorted order.
func (p *payload) Keys() []string {
	keys := make([]string, 0, len(p.fields))
	for key := range p.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the keys of required absent from the payload.
func (p *payload) Missing(required []string) []string {
	var missing []string
	for _, key := range required {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Unknown returns the payload keys not listed in allowed.
func (p *payload) Unknown(allowed []string) []string {
	var unknown []string
	for _, key := range p.Keys() {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// IsNull reports whether key is present with a JSON null value.
func (p *payload) IsNull(key string) bool {
	raw, ok := p.fields[key]
	return ok && string(bytes.TrimSpace(raw)) == "null"
}

// String returns the value of key when it is a JSON string.
func (p *payload) String(key string) (string, bool) {
	raw, ok := p.fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Int64 returns the value of key when it is a JSON integer.
func (p *payload) Int64(key string) (int64, bool) {
	raw, ok := p.fields[key]
	if !ok {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// Decode unmarshals the whole body into dst. Keys dst does not declare are ignored.
func (p *payload) Decode(dst any) error {
	if len(p.raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.raw, dst); err != nil {
		return errs.NewMalformedPayloadError("request", err)
	}
	return nil
}
