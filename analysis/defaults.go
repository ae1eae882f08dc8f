package analysis

// DefaultFont is used for any font slot that cannot be recovered.
const DefaultFont = "Calibri"

// DefaultLayoutNames is reported when no layout names can be read.
var DefaultLayoutNames = []string{"Title Slide", "Content", "Two Column", "Image & Content", "Section Header"}

// Default theme palette (Office 2013-2022). Used slot by slot when a theme
// part omits a color and as a whole when the part is missing or unreadable.
var defaultColorScheme = ColorScheme{
	Background1:       "#FFFFFF",
	Text1:             "#000000",
	Background2:       "#E7E6E6",
	Text2:             "#44546A",
	Accent1:           "#5B9BD5",
	Accent2:           "#70AD47",
	Accent3:           "#A5A5A5",
	Accent4:           "#FFC000",
	Accent5:           "#4472C4",
	Accent6:           "#C5504B",
	Hyperlink:         "#0066CC",
	FollowedHyperlink: "#954F72",
}

// DefaultTheme returns the theme substituted when extraction fails.
func DefaultTheme() ThemeData {
	return ThemeData{
		ColorScheme:  defaultColorScheme,
		FontScheme:   FontScheme{MajorFont: DefaultFont, MinorFont: DefaultFont},
		EffectScheme: map[string]string{},
	}
}

// Baseline analysis values. These differ from the default theme on purpose:
// the baseline describes "some generic deck", not a theme part.
var (
	baselineColors = []string{"#2563EB", "#64748B", "#10B981", "#F59E0B"}
	baselineFonts  = []string{"Calibri", "Arial"}
)

const (
	baselineSlideCount  = 12
	baselineLayoutCount = 5
)

// BaselineAnalysis returns the fixed analysis used when template bytes
// cannot be analyzed at all. It carries no theme.
func BaselineAnalysis() *TemplateAnalysis {
	return &TemplateAnalysis{
		SlideCount:    baselineSlideCount,
		ImageCount:    0,
		LayoutCount:   baselineLayoutCount,
		Colors:        append([]string(nil), baselineColors...),
		Fonts:         append([]string(nil), baselineFonts...),
		MasterLayouts: append([]string(nil), DefaultLayoutNames...),
		Images:        []ExtractedImage{},
		Baseline:      true,
	}
}

// Structure analyzer fallback after an internal failure. Its slide count
// disagrees with the baseline analysis; both are kept as observed.
const (
	structureFallbackSlides  = 1
	structureFallbackLayouts = 5
)

func structureFallback() StructureInfo {
	return StructureInfo{
		SlideCount:  structureFallbackSlides,
		LayoutCount: structureFallbackLayouts,
		LayoutNames: append([]string(nil), DefaultLayoutNames...),
	}
}
