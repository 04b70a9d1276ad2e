package layout

import (
	"strings"

	"github.com/matzehuels/polaroid/pkg/metadata"
)

// Separators used between items on a line.
const (
	SeparatorDot = "•"
	SeparatorBar = "|"
)

// Item is one candidate value on a line.
type Item struct {
	Field   metadata.Field
	Text    string
	Visible bool
}

// Segment is a drawable piece of a line: either a value or a separator.
type Segment struct {
	Text      string
	Separator bool
	Field     metadata.Field
}

// Segments filters items to those that are visible and non-empty and places
// sep between adjacent survivors.
func Segments(items []Item, sep string) []Segment {
	var out []Segment
	for _, it := range items {
		if !it.Visible || it.Text == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, Segment{Text: sep, Separator: true})
		}
		out = append(out, Segment{Text: it.Text, Field: it.Field})
	}
	return out
}

// JoinVisible renders the surviving items joined by " sep ".
func JoinVisible(items []Item, sep string) string {
	return joinSegments(Segments(items, sep))
}

func joinSegments(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
