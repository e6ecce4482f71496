package token

import "fmt"

// PosMode controls how FormatPos renders a position.
type PosMode int

const (
	// PosLong renders "name:line:col".
	PosLong PosMode = iota
	// PosOffsets renders the 0-based byte offset within the file, without
	// the file name.
	PosOffsets
	// PosRaw renders the raw encoded Pos value as a base-10 integer.
	PosRaw
	// PosNone renders the empty string.
	PosNone
)

func (m PosMode) String() string {
	switch m {
	case PosLong:
		return "long"
	case PosOffsets:
		return "offsets"
	case PosRaw:
		return "raw"
	case PosNone:
		return "none"
	default:
		return "unknown"
	}
}

// FormatPos renders p according to mode. f must be the File that contains p
// (as returned by FileSet.File), or nil if p is NoPos. withFilename controls
// whether PosLong includes the file name prefix.
func FormatPos(mode PosMode, f *File, p Pos, withFilename bool) string {
	switch mode {
	case PosNone:
		return ""
	case PosRaw:
		return fmt.Sprintf("%d", int(p))
	case PosOffsets:
		if f == nil || !p.IsValid() {
			return "-"
		}
		return fmt.Sprintf("%d", f.Offset(p))
	case PosLong:
		if f == nil || !p.IsValid() {
			name := ""
			if withFilename && f != nil {
				name = f.name
			}
			return fmt.Sprintf("%s:-:-", name)
		}
		pos := f.Position(p)
		if !withFilename {
			return fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
		}
		return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
	default:
		return ""
	}
}
