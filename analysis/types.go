// Package analysis recovers the styling, structure and media of an existing
// presentation template so generated decks can match it.
package analysis

// ColorScheme is the 12-slot theme palette. Every slot holds a "#RRGGBB"
// value; extraction fills missing slots from DefaultTheme.
type ColorScheme struct {
	Background1       string `json:"background1"`
	Text1             string `json:"text1"`
	Background2       string `json:"background2"`
	Text2             string `json:"text2"`
	Accent1           string `json:"accent1"`
	Accent2           string `json:"accent2"`
	Accent3           string `json:"accent3"`
	Accent4           string `json:"accent4"`
	Accent5           string `json:"accent5"`
	Accent6           string `json:"accent6"`
	Hyperlink         string `json:"hyperlink"`
	FollowedHyperlink string `json:"followedHyperlink"`
}

// Slice returns the slots in scheme order.
func (cs ColorScheme) Slice() []string {
	return []string{
		cs.Background1, cs.Text1, cs.Background2, cs.Text2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6,
		cs.Hyperlink, cs.FollowedHyperlink,
	}
}

// FontScheme holds the heading (major) and body (minor) latin typefaces.
type FontScheme struct {
	MajorFont string `json:"majorFont"`
	MinorFont string `json:"minorFont"`
}

// ThemeData is the styling recovered from a theme part.
type ThemeData struct {
	Name            string      `json:"name,omitempty"`
	ColorSchemeName string      `json:"colorSchemeName,omitempty"`
	FontSchemeName  string      `json:"fontSchemeName,omitempty"`
	ColorScheme     ColorScheme `json:"colorScheme"`
	FontScheme      FontScheme  `json:"fontScheme"`
	// EffectScheme is reserved; nothing reads it yet.
	EffectScheme map[string]string `json:"effectScheme"`
}

// ExtractedImage is a template media part copied to disk. The media
// extractor owns FilePath until Cleanup removes it.
type ExtractedImage struct {
	ID             string `json:"id"`
	OriginalName   string `json:"originalName"`
	FilePath       string `json:"filePath"`
	FileType       string `json:"fileType"`
	MimeType       string `json:"mimeType,omitempty"`
	Size           int64  `json:"size"`
	SourceTemplate string `json:"sourceTemplate,omitempty"`
	SlideContext   string `json:"slideContext,omitempty"`
	Description    string `json:"description,omitempty"`
}

// StructureInfo is the result of counting slide, layout and master parts.
type StructureInfo struct {
	SlideCount  int      `json:"slideCount"`
	LayoutCount int      `json:"layoutCount"`
	MasterCount int      `json:"masterCount"`
	LayoutNames []string `json:"masterLayouts"`
}

// TemplateAnalysis aggregates everything recovered from one template. It is
// built once per Analyze call and must be treated as read-only.
type TemplateAnalysis struct {
	TemplateName  string           `json:"templateName,omitempty"`
	SlideCount    int              `json:"slideCount"`
	ImageCount    int              `json:"imageCount"`
	LayoutCount   int              `json:"layoutCount"`
	MasterCount   int              `json:"masterCount"`
	Colors        []string         `json:"colors"`
	Fonts         []string         `json:"fonts"`
	MasterLayouts []string         `json:"masterLayouts"`
	Images        []ExtractedImage `json:"extractedImages"`
	// Theme is nil for the baseline analysis.
	Theme *ThemeData `json:"themeData,omitempty"`
	// Baseline is set when the template could not be analyzed at all.
	Baseline bool `json:"baseline"`
}
