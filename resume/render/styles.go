package render

import "fmt"

// RunStyle captures the inline formatting applied to key resume elements.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	HeadingSize  = 14
	NameSize     = 22
)

// StyleMap centralizes the formatting for key resume elements in HTML mode.
var StyleMap = map[string]RunStyle{
	"name": {
		Bold:  true,
		Size:  NameSize,
		Color: NameColor,
	},
	"sectionHeading": {
		Bold:  true,
		Size:  HeadingSize,
		Color: HeadingColor,
	},
	"roleLine": {
		Bold: true,
	},
	"meta": {
		Italic: true,
	},
}

// CSS renders the style as an inline declaration list.
func (s RunStyle) CSS() string {
	out := ""
	if s.Bold {
		out += "font-weight:bold;"
	}
	if s.Italic {
		out += "font-style:italic;"
	}
	if s.Size > 0 {
		out += fmt.Sprintf("font-size:%dpt;", s.Size)
	}
	if s.Color != "" {
		out += "color:#" + s.Color + ";"
	}
	return out
}
