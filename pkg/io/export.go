package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/metadata"
	"github.com/matzehuels/polaroid/pkg/orientation"
)

// Document is the JSON form of a polaroid description.
type Document struct {
	File        string            `json:"file,omitempty"`
	Orientation orientation.Code  `json:"orientation,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	Hidden      []string          `json:"hidden,omitempty"`
	Style       *compose.Style    `json:"style,omitempty"`
}

// NewDocument describes m under d. Empty metadata values are omitted.
func NewDocument(file string, m metadata.Metadata, d metadata.DisplayConfig, o orientation.Code, style *compose.Style) Document {
	doc := Document{
		File:        file,
		Orientation: o,
		Metadata:    make(map[string]string),
		Hidden:      d.Hidden(),
		Style:       style,
	}
	for _, f := range metadata.Fields() {
		if v := m.Get(f); v != "" {
			doc.Metadata[f.String()] = v
		}
	}
	return doc
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to the file at path.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
