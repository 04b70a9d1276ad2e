// Package layout decides which text appears on a polaroid and in what order.
//
// A layout is a short list of lines. Each line is built from metadata fields
// that are both visible in the DisplayConfig and non-empty; separators are
// placed only between two surviving items, and a line with no surviving items
// is dropped. Everything here is pure: no fonts, pixels or I/O.
//
//	l := layout.Assemble(meta, display)
//	for _, line := range l.Lines {
//	    fmt.Println(line.Kind, line.String())
//	}
package layout
