package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Layout is the kind of slide a record asks for.
type Layout string

const (
	LayoutTitleSlide   Layout = "title_slide"
	LayoutContent      Layout = "content"
	LayoutTwoColumn    Layout = "two_column"
	LayoutImageContent Layout = "image_content"
	LayoutConclusion   Layout = "conclusion"
)

// NormalizeLayout maps a layout name to a known Layout. Unknown values,
// including the empty string, become LayoutContent.
func NormalizeLayout(s string) Layout {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutTitleSlide, LayoutContent, LayoutTwoColumn, LayoutImageContent, LayoutConclusion:
		return l
	default:
		return LayoutContent
	}
}

// SlideContent is one slide of the content model.
type SlideContent struct {
	SlideNumber  int    `json:"slideNumber"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Layout       string `json:"layout"`
	SpeakerNotes string `json:"speakerNotes,omitempty"`
	// ImagePrompt describes a desired image. Builders do not read it.
	ImagePrompt string `json:"imagePrompt,omitempty"`
}

// PresentationContent is the slide outline produced by the content
// generator. Generation treats it as read-only.
type PresentationContent struct {
	Title             string         `json:"title"`
	Slides            []SlideContent `json:"slides"`
	TotalSlides       int            `json:"totalSlides"`
	EstimatedDuration string         `json:"estimatedDuration,omitempty"`
}

// ParseContent decodes a content model. Malformed JSON is repaired once
// before giving up. Slide numbers that are missing are filled from the
// slide's position and TotalSlides is set to the slide count.
func ParseContent(data []byte) (*PresentationContent, error) {
	var content PresentationContent
	if err := json.Unmarshal(data, &content); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("invalid content JSON: %w", err)
		}
		content = PresentationContent{}
		if err := json.Unmarshal([]byte(repaired), &content); err != nil {
			return nil, fmt.Errorf("invalid content JSON after repair: %w", err)
		}
	}

	for i := range content.Slides {
		s := &content.Slides[i]
		if s.SlideNumber <= 0 {
			s.SlideNumber = i + 1
		}
		s.Layout = string(NormalizeLayout(s.Layout))
	}
	content.TotalSlides = len(content.Slides)
	return &content, nil
}

// NotesMode controls speaker notes. Only NotesNone changes behavior.
type NotesMode string

const (
	NotesAuto     NotesMode = "auto"
	NotesDetailed NotesMode = "detailed"
	NotesBrief    NotesMode = "brief"
	NotesNone     NotesMode = "none"
)

// GenerationOptions are the caller's generation preferences. ReuseImages,
// PreserveLayouts and MatchFonts are accepted and carried through but do
// not change the output: template styling is always applied.
type GenerationOptions struct {
	GenerateNotes   NotesMode `json:"generateNotes"`
	ReuseImages     bool      `json:"reuseImages"`
	PreserveLayouts bool      `json:"preserveLayouts"`
	MatchFonts      bool      `json:"matchFonts"`
}

// DefaultOptions returns auto notes with every template flag enabled.
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		GenerateNotes:   NotesAuto,
		ReuseImages:     true,
		PreserveLayouts: true,
		MatchFonts:      true,
	}
}

func (o GenerationOptions) includeNotes() bool {
	return !strings.EqualFold(string(o.GenerateNotes), string(NotesNone))
}
