// Package export builds presentation documents from a content model, styled
// after an analyzed template.
package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
	"github.com/vraghavans1/auto-ppt-generator/apperr"
	"github.com/vraghavans1/auto-ppt-generator/config"
	"github.com/vraghavans1/auto-ppt-generator/container"
	"github.com/vraghavans1/auto-ppt-generator/logger"
	"github.com/vraghavans1/auto-ppt-generator/metrics"
)

const (
	serviceName     = "generator"
	documentSubject = "Generated presentation"
	maxTitleLength  = 50
)

// Generator renders content models into presentation files under the
// configured uploads directory.
type Generator struct {
	cfg      config.Config
	analyzer *analysis.Analyzer
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewGenerator creates a Generator. analyzer may be nil, in which case
// templates passed to Generate are ignored.
func NewGenerator(cfg config.Config, analyzer *analysis.Analyzer, log *logger.Logger, m *metrics.Metrics) *Generator {
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{cfg: cfg, analyzer: analyzer, log: log, metrics: m}
}

// Build assembles the slides in memory. A nil analysis uses the default
// style. Content without slides yields a single title slide.
func (g *Generator) Build(content *PresentationContent, a *analysis.TemplateAnalysis, opts GenerationOptions) (*ppt.Presentation, error) {
	if content == nil {
		return nil, apperr.WrapError(serviceName, "Build", apperr.Kind(apperr.ErrGeneration, errors.New("no content")))
	}

	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Title = content.Title
	props.Creator = g.cfg.Author
	props.Company = g.cfg.Company
	props.Subject = documentSubject
	p.GetLayout().SetCustomLayout(slideWidthEMU, slideHeightEMU)

	style := ResolveStyle(a)
	var images []analysis.ExtractedImage
	if a != nil {
		images = a.Images
	}

	slides := content.Slides
	if len(slides) == 0 {
		slides = []SlideContent{{SlideNumber: 1, Title: content.Title, Layout: string(LayoutTitleSlide)}}
	}

	for i, rec := range slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		slide.SetName(rec.Title)

		builderFor(rec.Layout)(slide, rec, style, images)

		if opts.includeNotes() && strings.TrimSpace(rec.SpeakerNotes) != "" {
			slide.SetNotes(rec.SpeakerNotes)
		}
	}
	return p, nil
}

// Render builds the presentation and serializes it. The theme part is
// replaced with the analysis theme, or the default theme without one.
func (g *Generator) Render(content *PresentationContent, a *analysis.TemplateAnalysis, opts GenerationOptions) ([]byte, error) {
	p, err := g.Build(content, a, opts)
	if err != nil {
		return nil, err
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, renderError(apperr.WrapOperationError("create PPT writer", err))
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, renderError(apperr.WrapOperationError("save PPT", err))
	}

	theme := analysis.DefaultTheme()
	if a != nil && a.Theme != nil {
		theme = *a.Theme
	}
	doc, err := container.Open(buf.Bytes())
	if err != nil {
		return nil, renderError(err)
	}
	out, err := doc.Rewrite(map[string][]byte{container.ThemePart: themePartXML(theme)})
	if err != nil {
		return nil, renderError(err)
	}
	return out, nil
}

func renderError(err error) error {
	return apperr.WrapError(serviceName, "Render", apperr.Kind(apperr.ErrGeneration, err))
}

// Generate analyzes template (when given), renders content and writes the
// document to <uploadsDir>/<title>_<uuid>.pptx. It returns the file path.
// Only write-side failures are reported; template problems degrade to
// default styling.
func (g *Generator) Generate(content *PresentationContent, template []byte, templateName string, opts GenerationOptions) (path string, err error) {
	start := time.Now()
	defer func() { g.metrics.ObserveGeneration(start, err) }()

	var a *analysis.TemplateAnalysis
	switch {
	case len(template) == 0 || g.analyzer == nil:
	case g.cfg.MaxTemplateBytes > 0 && int64(len(template)) > g.cfg.MaxTemplateBytes:
		g.log.WithTemplate(templateName).Warnf("template is %d bytes, over the %d byte limit; using default style", len(template), g.cfg.MaxTemplateBytes)
	default:
		a = g.analyzer.Analyze(template, templateName)
	}

	data, err := g.Render(content, a, opts)
	if err != nil {
		g.log.Errorf("render failed: %v", err)
		return "", err
	}

	path, err = g.writeFile(content.Title, data)
	if err != nil {
		g.log.Errorf("write failed: %v", err)
		return "", err
	}

	g.log.WithFields(logrus.Fields{
		"path":     path,
		"slides":   len(content.Slides),
		"template": templateName,
		"bytes":    len(data),
	}).Info("presentation generated")
	return path, nil
}

func (g *Generator) writeFile(title string, data []byte) (string, error) {
	if err := os.MkdirAll(g.cfg.UploadsDir, 0o755); err != nil {
		return "", apperr.WrapError(serviceName, "Generate", apperr.Kind(apperr.ErrGeneration,
			apperr.WrapOperationError("create uploads dir", err)))
	}
	path := filepath.Join(g.cfg.UploadsDir, SanitizeTitle(title)+"_"+uuid.NewString()+".pptx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.WrapError(serviceName, "Generate", apperr.Kind(apperr.ErrGeneration,
			apperr.WrapOperationError("write presentation", err)))
	}
	return path, nil
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SanitizeTitle turns a title into a file-name stem: accents are folded,
// every other non-alphanumeric run becomes '_', and the result is capped
// at 50 characters. An empty result becomes "presentation".
func SanitizeTitle(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	s := strings.Trim(nonAlnum.ReplaceAllString(folded, "_"), "_")
	if len(s) > maxTitleLength {
		s = strings.TrimRight(s[:maxTitleLength], "_")
	}
	if s == "" {
		return "presentation"
	}
	return s
}
