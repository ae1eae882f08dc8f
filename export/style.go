package export

import (
	"strings"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
)

// StyleContext is the flat styling every slide builder reads. Colors are
// RRGGBB without a leading '#'.
type StyleContext struct {
	TitleColor  string
	TextColor   string
	AccentColor string
	TitleFont   string
	BodyFont    string
}

// DefaultStyle is used when there is no template theme.
func DefaultStyle() StyleContext {
	return StyleContext{
		TitleColor:  "2563EB",
		TextColor:   "374151",
		AccentColor: "64748B",
		TitleFont:   "Calibri",
		BodyFont:    "Calibri",
	}
}

// ResolveStyle derives the style from an analysis. A nil analysis, or one
// without theme data such as the baseline, yields DefaultStyle.
func ResolveStyle(a *analysis.TemplateAnalysis) StyleContext {
	if a == nil || a.Theme == nil {
		return DefaultStyle()
	}
	cs, fs := a.Theme.ColorScheme, a.Theme.FontScheme
	return StyleContext{
		TitleColor:  strings.TrimPrefix(cs.Accent1, "#"),
		TextColor:   strings.TrimPrefix(cs.Text1, "#"),
		AccentColor: strings.TrimPrefix(cs.Accent2, "#"),
		TitleFont:   fs.MajorFont,
		BodyFont:    fs.MinorFont,
	}
}

// argb turns RRGGBB into the opaque AARRGGBB form GoPPT colors use.
func argb(rgb string) string {
	return "FF" + strings.ToUpper(rgb)
}
