// Package rawdoc holds the untyped portfolio export and the lookups the
// normalizers run against it.
//
// A Document is an object keyed by report-section name. Each section is
// expected to be an array of loosely typed row objects, but any section may be
// missing or malformed; lookups report absence instead of failing.
package rawdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/parsererror"

	"github.com/PaesslerAG/jsonpath"
)

// Document is a decoded portfolio export. The zero value is an absent
// document: every lookup on it reports a missing section.
type Document struct {
	source string
	root   map[string]interface{}
}

// Decode reads one JSON object from r. Numbers are kept as json.Number so
// monetary values keep their exact textual precision.
func Decode(r io.Reader, source string) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Document{}, &parsererror.InvalidDocumentError{Source: source, Reason: "malformed JSON", Err: err}
	}
	root, ok := v.(map[string]interface{})
	if !ok {
		return Document{}, &parsererror.InvalidDocumentError{
			Source: source,
			Reason: fmt.Sprintf("top-level value is %T, expected an object keyed by section", v),
		}
	}
	return Document{source: source, root: root}, nil
}

// LoadFile reads and decodes the export stored at path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("error opening portfolio document: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// FromMap builds a Document from an injected in-memory value. The value is
// round-tripped through JSON so that it has exactly the shape a decoded file
// would have.
func FromMap(m map[string]interface{}) (Document, error) {
	if m == nil {
		return Document{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return Document{}, &parsererror.InvalidDocumentError{Source: "memory", Reason: "value is not JSON encodable", Err: err}
	}
	return Decode(bytes.NewReader(data), "memory")
}

// MustFromMap is FromMap for fixtures; it panics on error.
func MustFromMap(m map[string]interface{}) Document {
	d, err := FromMap(m)
	if err != nil {
		panic(err)
	}
	return d
}

// Source names where the document came from.
func (d Document) Source() string { return d.source }

// IsZero reports whether no document was loaded.
func (d Document) IsZero() bool { return d.root == nil }

// Keys returns the number of top-level sections.
func (d Document) Keys() int { return len(d.root) }

// Raw returns the value stored under key, whatever its shape.
func (d Document) Raw(key string) (interface{}, bool) {
	if d.root == nil {
		return nil, false
	}
	v, err := jsonpath.Get(fmt.Sprintf("$[%q]", key), d.root)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Section returns the rows of category c, probing its accepted key spellings
// in priority order. The first key holding an array wins; the key used is
// returned alongside the rows.
func (d Document) Section(c models.Category) ([]interface{}, string, bool) {
	for _, key := range Aliases(c) {
		v, ok := d.Raw(key)
		if !ok {
			continue
		}
		if rows, ok := v.([]interface{}); ok {
			return rows, key, true
		}
	}
	return nil, "", false
}
