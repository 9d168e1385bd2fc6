package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a feed document is not a JSON object.
var ErrNotObject = errors.New("feed document is not a JSON object")

// Document is a JSON object keyed by race (or reporting unit) id.
// It keeps keys in document order so batch output is deterministic for a given feed.
type Document struct {
	keys    []string
	entries map[string]json.RawMessage
	raw     []byte
}

// ParseDocument decodes a feed document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// UnmarshalJSON implements json.Unmarshaler. Duplicate keys keep their first position and
// their last value.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read feed document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	keys := make([]string, 0)
	entries := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read feed key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected feed token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read feed entry %q: %w", key, err)
		}
		if _, dup := entries[key]; !dup {
			keys = append(keys, key)
		}
		entries[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close feed document: %w", err)
	}

	d.keys = keys
	d.entries = entries
	d.raw = append([]byte(nil), data...)
	return nil
}

// MarshalJSON returns the document as received.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil || d.raw == nil {
		return []byte("{}"), nil
	}
	return d.raw, nil
}

// Keys returns the ids in document order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Get returns the raw entry for an id.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	if d == nil {
		return nil, false
	}
	raw, ok := d.entries[key]
	return raw, ok
}

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Bytes returns the document body as received, for archiving.
func (d *Document) Bytes() []byte {
	if d == nil {
		return nil
	}
	return d.raw
}
