// Package metrics exposes Prometheus instruments for template analysis and
// document generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis results recorded by ObserveAnalysis.
const (
	ResultExtracted = "extracted"
	ResultBaseline  = "baseline"
	ResultSuccess   = "success"
	ResultFailure   = "failure"
)

// Metrics holds the custom instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	TemplateAnalyses   *prometheus.CounterVec
	ThemeFallbacks     prometheus.Counter
	ExtractedImages    prometheus.Counter
	Presentations      *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
}

// New registers the instruments with reg. Pass prometheus.DefaultRegisterer
// in the service and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TemplateAnalyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "deckgen_template_analyses_total",
			Help: "Template analyses by result (extracted or baseline fallback)",
		}, []string{"result"}),

		ThemeFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "deckgen_theme_fallbacks_total",
			Help: "Theme extractions that returned the default theme",
		}),

		ExtractedImages: factory.NewCounter(prometheus.CounterOpts{
			Name: "deckgen_extracted_images_total",
			Help: "Media parts copied out of templates",
		}),

		Presentations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "deckgen_presentations_generated_total",
			Help: "Generated presentations by result",
		}, []string{"result"}),

		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "deckgen_generation_duration_seconds",
			Help:    "Time spent building and writing a presentation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
	}
}

// ObserveAnalysis counts one analysis with the given result.
func (m *Metrics) ObserveAnalysis(result string) {
	if m == nil {
		return
	}
	m.TemplateAnalyses.WithLabelValues(result).Inc()
}

// ObserveThemeFallback counts one default-theme substitution.
func (m *Metrics) ObserveThemeFallback() {
	if m == nil {
		return
	}
	m.ThemeFallbacks.Inc()
}

// ObserveImages adds n extracted images.
func (m *Metrics) ObserveImages(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ExtractedImages.Add(float64(n))
}

// ObserveGeneration records one generation attempt started at start.
func (m *Metrics) ObserveGeneration(start time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.Presentations.WithLabelValues(result).Inc()
	m.GenerationDuration.Observe(time.Since(start).Seconds())
}
