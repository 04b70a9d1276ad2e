package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/polaroid/pkg/metadata"
)

// ReadJSON decodes a description from r and validates its keys.
//
// ReadJSON returns an error if the JSON is malformed, a metadata or hidden
// key is not a field name, or a value cannot be drawn on one line.
// It does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if _, err := doc.Overrides(); err != nil {
		return Document{}, err
	}
	if _, err := doc.Display(); err != nil {
		return Document{}, err
	}
	if doc.Style != nil {
		if err := doc.Style.Validate(); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

// ImportJSON reads a description from the file at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// Overrides returns the document's metadata as overrides.
func (d Document) Overrides() (metadata.Overrides, error) {
	return metadata.ParseOverrides(d.Metadata)
}

// Display returns a display config with the document's hidden fields hidden.
func (d Document) Display() (metadata.DisplayConfig, error) {
	cfg := metadata.NewDisplayConfig()
	if err := cfg.Hide(d.Hidden...); err != nil {
		return metadata.DisplayConfig{}, err
	}
	return cfg, nil
}
