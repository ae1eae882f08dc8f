package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
	"github.com/vraghavans1/auto-ppt-generator/apperr"
	"github.com/vraghavans1/auto-ppt-generator/config"
	"github.com/vraghavans1/auto-ppt-generator/container"
	"github.com/vraghavans1/auto-ppt-generator/logger"
	"github.com/vraghavans1/auto-ppt-generator/metrics"
)

func sampleContent() *PresentationContent {
	return &PresentationContent{
		Title: "Café Strategy 2025",
		Slides: []SlideContent{
			{SlideNumber: 1, Title: "Café Strategy 2025", Content: "Planning session", Layout: "title_slide", SpeakerNotes: "Welcome everyone"},
			{SlideNumber: 2, Title: "Goals", Content: "- Grow\n- Retain", Layout: "content"},
			{SlideNumber: 3, Title: "Options", Content: "A\n\nB\n\nC", Layout: "two_column", SpeakerNotes: "Compare options"},
			{SlideNumber: 4, Title: "Storefront", Content: "New look", Layout: "image_content"},
			{SlideNumber: 5, Title: "Thanks", Content: "Questions?", Layout: "conclusion"},
		},
		TotalSlides: 5,
	}
}

func readBack(t *testing.T, data []byte) *ppt.Presentation {
	t.Helper()
	pres, err := ppt.ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	return pres
}

func TestBuild_MetadataAndLayout(t *testing.T) {
	g := newTestGenerator(t)
	p, err := g.Build(sampleContent(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	props := p.GetDocumentProperties()
	if props.Title != "Café Strategy 2025" || props.Creator != "Auto PPT Generator" || props.Subject == "" {
		t.Errorf("unexpected properties %+v", props)
	}
	if l := p.GetLayout(); l.CX != 9144000 || l.CY != 5143500 {
		t.Errorf("layout = %dx%d, want 16:9 10x5.625in", l.CX, l.CY)
	}
	if p.GetSlideCount() != 5 {
		t.Errorf("slides = %d", p.GetSlideCount())
	}
}

func TestBuild_NilContent(t *testing.T) {
	_, err := newTestGenerator(t).Build(nil, nil, DefaultOptions())
	if !errors.Is(err, apperr.ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestBuild_EmptySlidesGivesTitleSlide(t *testing.T) {
	p, err := newTestGenerator(t).Build(&PresentationContent{Title: "Lonely"}, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	slides := p.GetAllSlides()
	if len(slides) != 1 {
		t.Fatalf("slides = %d", len(slides))
	}
	firstRun(t, slides[0], "Lonely")
}

func TestBuild_Notes(t *testing.T) {
	g := newTestGenerator(t)

	p, err := g.Build(sampleContent(), nil, GenerationOptions{GenerateNotes: NotesBrief})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	slides := p.GetAllSlides()
	if slides[0].GetNotes() != "Welcome everyone" || slides[2].GetNotes() != "Compare options" {
		t.Errorf("notes not attached")
	}
	if slides[1].GetNotes() != "" {
		t.Errorf("slide without notes got %q", slides[1].GetNotes())
	}

	p, err = g.Build(sampleContent(), nil, GenerationOptions{GenerateNotes: NotesNone})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, s := range p.GetAllSlides() {
		if s.GetNotes() != "" {
			t.Errorf("slide %d has notes with generateNotes=none", i+1)
		}
	}
}

func TestRender_RoundTrip(t *testing.T) {
	data, err := newTestGenerator(t).Render(sampleContent(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	pres := readBack(t, data)
	if pres.GetSlideCount() != 5 {
		t.Fatalf("round-trip slides = %d", pres.GetSlideCount())
	}
	s1, _ := pres.GetSlide(0)
	if !strings.Contains(s1.ExtractText(), "Café Strategy 2025") {
		t.Errorf("title text missing: %q", s1.ExtractText())
	}
	if s1.GetNotes() != "Welcome everyone" {
		t.Errorf("notes = %q", s1.GetNotes())
	}
}

func TestRender_DefaultThemePart(t *testing.T) {
	data, err := newTestGenerator(t).Render(sampleContent(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	c, err := container.Open(data)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	part, ok := c.Part(container.ThemePart)
	if !ok {
		t.Fatal("theme part missing")
	}
	theme, err := analysis.ParseTheme(part)
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if theme.ColorScheme != analysis.DefaultTheme().ColorScheme || theme.FontScheme != analysis.DefaultTheme().FontScheme {
		t.Errorf("theme part = %+v", theme)
	}
}

func TestRender_TemplateThemePart(t *testing.T) {
	theme := analysis.DefaultTheme()
	theme.Name = "Brand & Co"
	theme.ColorScheme.Accent1 = "#AA0011"
	theme.FontScheme = analysis.FontScheme{MajorFont: "Georgia", MinorFont: "Verdana"}
	a := &analysis.TemplateAnalysis{Theme: &theme, Images: []analysis.ExtractedImage{}}

	data, err := newTestGenerator(t).Render(sampleContent(), a, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	c, err := container.Open(data)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	got := analysis.ExtractTheme(c)
	if got.ColorScheme.Accent1 != "#AA0011" || got.FontScheme.MajorFont != "Georgia" || got.Name != "Brand & Co" {
		t.Errorf("theme = %+v", got)
	}

	pres := readBack(t, data)
	s1, _ := pres.GetSlide(0)
	if s1 == nil {
		t.Fatal("slide 1 missing")
	}
}

// buildTemplate writes a small template whose theme sets accent1/text1/accent2.
func buildTemplate(t *testing.T) []byte {
	t.Helper()
	const theme = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="T"><a:themeElements>
		<a:clrScheme name="T">
			<a:dk1><a:srgbClr val="111111"/></a:dk1>
			<a:accent1><a:srgbClr val="0A0B0C"/></a:accent1>
			<a:accent2><a:srgbClr val="D0E0F0"/></a:accent2>
		</a:clrScheme>
		<a:fontScheme name="T">
			<a:majorFont><a:latin typeface="Georgia"/></a:majorFont>
			<a:minorFont><a:latin typeface="Verdana"/></a:minorFont>
		</a:fontScheme>
	</a:themeElements></a:theme>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string][]byte{
		container.ThemePart:    []byte(theme),
		"ppt/slides/slide1.xml": []byte("<p:sld/>"),
		"ppt/media/image1.png":  testPNG,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(body); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestGenerate_WithTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.UploadsDir = t.TempDir()
	m := metrics.New(prometheus.NewRegistry())
	media := analysis.NewMediaExtractor(cfg.ImagesDir(), logger.Discard())
	g := NewGenerator(cfg, analysis.NewAnalyzer(media, logger.Discard(), m), logger.Discard(), m)

	path, err := g.Generate(sampleContent(), buildTemplate(t), "brand.pptx", DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if filepath.Dir(path) != cfg.UploadsDir {
		t.Errorf("output outside uploads dir: %s", path)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "Cafe_Strategy_2025_") || !strings.HasSuffix(base, ".pptx") {
		t.Errorf("unexpected file name %s", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	pres := readBack(t, data)

	// Slide 2 is a content slide: title in accent1, body in text1.
	s2, _ := pres.GetSlide(1)
	if s2 == nil {
		t.Fatal("slide 2 missing")
	}
	p, err := g.Build(sampleContent(), g.analyzer.Analyze(buildTemplate(t), "brand.pptx"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	slides := p.GetAllSlides()
	if f := firstRun(t, slides[1], "Goals").GetFont(); f.Color.ARGB != "FF0A0B0C" || f.Name != "Georgia" {
		t.Errorf("title font = %+v", f)
	}
	if f := firstRun(t, slides[1], "• Grow").GetFont(); f.Color.ARGB != "FF111111" || f.Name != "Verdana" {
		t.Errorf("body font = %+v", f)
	}
	if f := firstRun(t, slides[2], "Options").GetFont(); f.Color.ARGB != "FFD0E0F0" {
		t.Errorf("two_column title color = %s", f.Color.ARGB)
	}

	// The template image is reused on the image_content slide.
	hasImage := false
	for _, sh := range slides[3].GetShapes() {
		if _, ok := sh.(*ppt.DrawingShape); ok {
			hasImage = true
		}
	}
	if !hasImage {
		t.Error("template image not reused")
	}

	if got := testutil.ToFloat64(m.Presentations.WithLabelValues(metrics.ResultSuccess)); got != 1 {
		t.Errorf("success counter = %v", got)
	}
}

func TestGenerate_CorruptTemplateUsesDefaultStyle(t *testing.T) {
	cfg := config.Default()
	cfg.UploadsDir = t.TempDir()
	g := NewGenerator(cfg, analysis.NewAnalyzer(nil, nil, nil), nil, nil)

	path, err := g.Generate(sampleContent(), []byte("not a zip"), "broken.pptx", DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	c, err := container.Open(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := analysis.ExtractTheme(c); got.ColorScheme != analysis.DefaultTheme().ColorScheme {
		t.Errorf("expected default theme part, got %+v", got.ColorScheme)
	}
}

func TestGenerate_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.UploadsDir = filepath.Join(blocker, "uploads")
	m := metrics.New(prometheus.NewRegistry())
	g := NewGenerator(cfg, nil, logger.Discard(), m)

	_, err := g.Generate(sampleContent(), nil, "", DefaultOptions())
	if !errors.Is(err, apperr.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	var se *apperr.ServiceError
	if !errors.As(err, &se) || se.Service != "generator" {
		t.Errorf("expected generator ServiceError, got %v", err)
	}
	if got := testutil.ToFloat64(m.Presentations.WithLabelValues(metrics.ResultFailure)); got != 1 {
		t.Errorf("failure counter = %v", got)
	}
}

func TestGenerate_UniqueNames(t *testing.T) {
	g := newTestGenerator(t)
	content := &PresentationContent{Title: "Same", Slides: []SlideContent{{Title: "x", Layout: "content"}}}

	a, err := g.Generate(content, nil, "", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(content, nil, "", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two generations share path %s", a)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Quarterly Review", "Quarterly_Review"},
		{"Café Strategy: 2025!", "Cafe_Strategy_2025"},
		{"  ", "presentation"},
		{"日本語", "presentation"},
		{"../../etc/passwd", "etc_passwd"},
		{strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemePartXML_Escapes(t *testing.T) {
	theme := analysis.DefaultTheme()
	theme.FontScheme.MajorFont = `A "quoted" <font>`
	theme.ColorScheme.Accent3 = "not-a-color"

	parsed, err := analysis.ParseTheme(themePartXML(theme))
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if parsed.FontScheme.MajorFont != `A "quoted" <font>` {
		t.Errorf("major font = %q", parsed.FontScheme.MajorFont)
	}
	if parsed.ColorScheme.Accent3 != "#000000" {
		t.Errorf("invalid color written as %s", parsed.ColorScheme.Accent3)
	}
}
