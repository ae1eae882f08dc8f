package analysis

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vraghavans1/auto-ppt-generator/container"
	"github.com/vraghavans1/auto-ppt-generator/logger"
	"github.com/vraghavans1/auto-ppt-generator/metrics"
)

// Analyzer turns template bytes into a TemplateAnalysis.
type Analyzer struct {
	media   *MediaExtractor
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewAnalyzer creates an Analyzer. log and m may be nil.
func NewAnalyzer(media *MediaExtractor, log *logger.Logger, m *metrics.Metrics) *Analyzer {
	if log == nil {
		log = logger.Discard()
	}
	return &Analyzer{media: media, log: log, metrics: m}
}

// Media returns the extractor used for template images.
func (a *Analyzer) Media() *MediaExtractor {
	return a.media
}

// Analyze extracts theme, structure and media from a template. It never
// fails: bytes that are not a container, or any unexpected fault, produce
// BaselineAnalysis. Failures inside one step only replace that step's
// result.
func (a *Analyzer) Analyze(data []byte, templateName string) (result *TemplateAnalysis) {
	log := a.log.WithTemplate(templateName)
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("template analysis panicked, using baseline: %v", r)
			result = a.baseline(templateName)
		}
	}()

	c, err := container.Open(data)
	if err != nil {
		log.WithError(err).Warn("template is not a readable container, using baseline")
		return a.baseline(templateName)
	}

	var (
		theme     ThemeData
		structure StructureInfo
		images    []ExtractedImage
	)

	// Each step absorbs its own failures, so the group never reports one.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		theme, err = extractTheme(c)
		if err != nil {
			log.WithError(err).Warn("theme extraction fell back to default theme")
			a.metrics.ObserveThemeFallback()
		}
		return nil
	})
	g.Go(func() error {
		var ok bool
		structure, ok = analyzeStructure(c)
		if !ok {
			log.Warn("structure analysis failed, using fallback structure")
		}
		return nil
	})
	g.Go(func() error {
		if a.media == nil {
			images = []ExtractedImage{}
			return nil
		}
		images = a.media.Extract(c, templateName)
		return nil
	})
	_ = g.Wait()

	result = &TemplateAnalysis{
		TemplateName:  templateName,
		SlideCount:    structure.SlideCount,
		ImageCount:    len(images),
		LayoutCount:   structure.LayoutCount,
		MasterCount:   structure.MasterCount,
		Colors:        lo.Compact(theme.ColorScheme.Slice()),
		Fonts:         lo.Compact([]string{theme.FontScheme.MajorFont, theme.FontScheme.MinorFont}),
		MasterLayouts: structure.LayoutNames,
		Images:        images,
		Theme:         &theme,
	}

	a.metrics.ObserveAnalysis(metrics.ResultExtracted)
	a.metrics.ObserveImages(len(images))
	log.WithFields(logrus.Fields{
		"slides":  result.SlideCount,
		"layouts": result.LayoutCount,
		"images":  result.ImageCount,
	}).Info("template analyzed")
	return result
}

func (a *Analyzer) baseline(templateName string) *TemplateAnalysis {
	a.metrics.ObserveAnalysis(metrics.ResultBaseline)
	b := BaselineAnalysis()
	b.TemplateName = templateName
	return b
}
