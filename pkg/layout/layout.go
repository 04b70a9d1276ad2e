package layout

import (
	"github.com/matzehuels/polaroid/pkg/metadata"
)

// LineKind identifies a line of the polaroid caption.
type LineKind int

const (
	LineBrand LineKind = iota
	LineCamera
	LineSettings
	LinePeople
	LineShoot
)

func (k LineKind) String() string {
	switch k {
	case LineBrand:
		return "brand"
	case LineCamera:
		return "camera"
	case LineSettings:
		return "settings"
	case LinePeople:
		return "people"
	case LineShoot:
		return "shoot"
	}
	return "unknown"
}

// Line is one rendered caption line.
type Line struct {
	Kind     LineKind
	Segments []Segment
	// Mark is set on a brand line whose make is a known brand.
	Mark *BrandMark
}

// String renders the line as plain text.
func (l Line) String() string {
	if l.Mark != nil {
		return l.Mark.Wordmark
	}
	return joinSegments(l.Segments)
}

// Layout is the ordered, non-empty caption lines of a polaroid.
type Layout struct {
	Lines []Line
}

// Line returns the line of the given kind, if present.
func (l Layout) Line(k LineKind) (Line, bool) {
	for _, line := range l.Lines {
		if line.Kind == k {
			return line, true
		}
	}
	return Line{}, false
}

// Assemble builds the caption for m under d.
func Assemble(m metadata.Metadata, d metadata.DisplayConfig) Layout {
	item := func(f metadata.Field) Item {
		text := m.Get(f)
		// Filter on the raw value; the unit is only added to something real.
		if f == metadata.FocalLength {
			text = metadata.FormatFocalLength(text)
		}
		return Item{Field: f, Text: text, Visible: d.Visible(f)}
	}

	var out Layout
	if brand := item(metadata.Make); brand.Visible && brand.Text != "" {
		line := Line{Kind: LineBrand, Segments: []Segment{{Text: brand.Text, Field: metadata.Make}}}
		if mark, ok := LookupBrand(brand.Text); ok {
			line.Mark = &mark
		}
		out.Lines = append(out.Lines, line)
	}

	rows := []struct {
		kind   LineKind
		sep    string
		fields []metadata.Field
	}{
		{LineCamera, SeparatorDot, []metadata.Field{metadata.Model, metadata.Lens}},
		{LineSettings, SeparatorBar, []metadata.Field{metadata.Shutter, metadata.Aperture, metadata.FocalLength, metadata.ISO}},
		{LinePeople, SeparatorBar, []metadata.Field{metadata.Photographer, metadata.SubjectModel, metadata.Character}},
		{LineShoot, SeparatorBar, []metadata.Field{metadata.DateTimeTaken, metadata.LocationName}},
	}
	for _, row := range rows {
		items := make([]Item, len(row.fields))
		for i, f := range row.fields {
			items[i] = item(f)
		}
		if segs := Segments(items, row.sep); len(segs) > 0 {
			out.Lines = append(out.Lines, Line{Kind: row.kind, Segments: segs})
		}
	}
	return out
}
