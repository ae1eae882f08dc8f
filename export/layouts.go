package export

import (
	"os"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
)

// Slide geometry, 16:9 widescreen.
const (
	emuPerInch = 914400

	slideWidthIn  = 10.0
	slideHeightIn = 5.625

	marginIn       = 0.5
	contentWidthIn = slideWidthIn - 2*marginIn
	bodyTopIn      = 1.3
	bodyHeightIn   = 3.9
	columnGapIn    = 0.4
	columnWidthIn  = (contentWidthIn - columnGapIn) / 2

	slideWidthEMU  = int64(slideWidthIn * emuPerInch)
	slideHeightEMU = int64(slideHeightIn * emuPerInch)
)

// Font sizes (pt).
const (
	fontCoverTitle  = 40
	fontSubtitle    = 20
	fontHeading     = 28
	fontClosing     = 36
	fontBody        = 16
	fontClosingBody = 18
	fontPlaceholder = 14
	fontSpacer      = 6
)

// PlaceholderText is shown where a template image would go when none can
// be reused.
const PlaceholderText = "Image Placeholder"

// slideBuilder renders one record onto an empty slide.
type slideBuilder func(slide *ppt.Slide, rec SlideContent, style StyleContext, images []analysis.ExtractedImage)

var builders = map[Layout]slideBuilder{
	LayoutTitleSlide:   buildTitleSlide,
	LayoutContent:      buildContentSlide,
	LayoutTwoColumn:    buildTwoColumnSlide,
	LayoutImageContent: buildImageContentSlide,
	LayoutConclusion:   buildConclusionSlide,
}

func builderFor(layout string) slideBuilder {
	return builders[NormalizeLayout(layout)]
}

func inches(v float64) int64 {
	return int64(v * emuPerInch)
}

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// textBox places an empty word-wrapped text shape, in inches.
func textBox(slide *ppt.Slide, x, y, w, h float64) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(inches(x)).SetOffsetY(inches(y))
	shape.SetWidth(inches(w)).SetHeight(inches(h))
	shape.SetWordWrap(true)
	return shape
}

// textStyle is the run formatting for one text block.
type textStyle struct {
	size   int
	bold   bool
	color  string
	font   string
	center bool
}

// writeLines renders each line as its own paragraph. Blank lines become
// small spacer runs so paragraph breaks survive.
func writeLines(shape *ppt.RichTextShape, lines []string, ts textStyle) {
	for i, line := range lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		para := shape.GetActiveParagraph()
		if ts.center {
			alignCenter(para)
		}

		if strings.TrimSpace(line) == "" {
			tr := shape.CreateTextRun(" ")
			tr.GetFont().SetSize(fontSpacer)
			continue
		}

		format := parseLine(line)
		tr := shape.CreateTextRun(format.text)
		tr.GetFont().SetSize(ts.size).SetBold(ts.bold || format.isHeading).SetColor(ppt.NewColor(argb(ts.color))).SetName(ts.font)
	}
}

func writeText(shape *ppt.RichTextShape, text string, ts textStyle) {
	writeLines(shape, splitLines(text), ts)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

// lineFormat is a body line with its markdown markers removed.
type lineFormat struct {
	text      string
	isHeading bool
}

// parseLine strips the light markdown the content generator emits:
// headings, list markers and bold markers.
func parseLine(line string) lineFormat {
	result := lineFormat{text: line}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		heading := strings.TrimLeft(trimmed, "#")
		if strings.HasPrefix(heading, " ") {
			result.isHeading = true
			result.text = strings.TrimSpace(heading)
		}
	} else if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		result.text = "• " + trimmed[2:]
	}

	result.text = stripMarkdownBold(result.text)
	return result
}

// stripMarkdownBold removes ** and __ markers
func stripMarkdownBold(text string) string {
	for _, marker := range []string{"**", "__"} {
		for {
			start := strings.Index(text, marker)
			if start == -1 {
				break
			}
			end := strings.Index(text[start+2:], marker)
			if end == -1 {
				break
			}
			text = text[:start] + text[start+2:start+2+end] + text[start+2+end+2:]
		}
	}
	return text
}

// slideTitle draws the left-aligned title band shared by body layouts.
func slideTitle(slide *ppt.Slide, title, color string, style StyleContext) {
	shape := textBox(slide, marginIn, 0.3, contentWidthIn, 0.8)
	shape.SetTextAnchor(ppt.TextAnchorMiddle)
	writeLines(shape, []string{title}, textStyle{size: fontHeading, bold: true, color: color, font: style.TitleFont})
}

func bodyStyle(style StyleContext) textStyle {
	return textStyle{size: fontBody, color: style.TextColor, font: style.BodyFont}
}

// buildTitleSlide: centered title in the upper-middle band, optional
// subtitle below it.
func buildTitleSlide(slide *ppt.Slide, rec SlideContent, style StyleContext, _ []analysis.ExtractedImage) {
	bar := textBox(slide, 0, 0, slideWidthIn, 0.12)
	bar.SetFill(solidFill(argb(style.TitleColor)))

	title := textBox(slide, marginIn, 1.5, contentWidthIn, 1.3)
	title.SetTextAnchor(ppt.TextAnchorMiddle)
	writeLines(title, []string{rec.Title}, textStyle{size: fontCoverTitle, bold: true, color: style.TitleColor, font: style.TitleFont, center: true})

	if strings.TrimSpace(rec.Content) != "" {
		sub := textBox(slide, 1.0, 3.0, slideWidthIn-2.0, 1.2)
		writeText(sub, rec.Content, textStyle{size: fontSubtitle, color: style.AccentColor, font: style.BodyFont, center: true})
	}
}

// buildContentSlide: title band on top, full-width body below.
func buildContentSlide(slide *ppt.Slide, rec SlideContent, style StyleContext, _ []analysis.ExtractedImage) {
	slideTitle(slide, rec.Title, style.TitleColor, style)

	body := textBox(slide, marginIn, bodyTopIn, contentWidthIn, bodyHeightIn)
	writeText(body, rec.Content, bodyStyle(style))
}

// buildTwoColumnSlide: accent-colored title, paragraphs split across two
// columns with the left column taking the extra one.
func buildTwoColumnSlide(slide *ppt.Slide, rec SlideContent, style StyleContext, _ []analysis.ExtractedImage) {
	slideTitle(slide, rec.Title, style.AccentColor, style)

	left, right := splitColumns(rec.Content)
	leftBox := textBox(slide, marginIn, bodyTopIn, columnWidthIn, bodyHeightIn)
	writeLines(leftBox, columnLines(left), bodyStyle(style))

	rightBox := textBox(slide, marginIn+columnWidthIn+columnGapIn, bodyTopIn, columnWidthIn, bodyHeightIn)
	writeLines(rightBox, columnLines(right), bodyStyle(style))
}

// splitParagraphs splits on blank-line separators and drops empty pieces.
func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := lo.Map(strings.Split(content, "\n\n"), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// splitColumns gives the left column ceil(n/2) paragraphs.
func splitColumns(content string) (left, right []string) {
	paras := splitParagraphs(content)
	if len(paras) == 0 {
		return nil, nil
	}
	chunks := lo.Chunk(paras, (len(paras)+1)/2)
	left = chunks[0]
	if len(chunks) > 1 {
		right = chunks[1]
	}
	return left, right
}

// columnLines flattens paragraphs into lines with a blank line between
// paragraphs.
func columnLines(paras []string) []string {
	if len(paras) == 0 {
		return []string{""}
	}
	var lines []string
	for i, p := range paras {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(p)...)
	}
	return lines
}

// buildImageContentSlide: body on the left, the first reusable template
// image on the right, or a placeholder box.
func buildImageContentSlide(slide *ppt.Slide, rec SlideContent, style StyleContext, images []analysis.ExtractedImage) {
	slideTitle(slide, rec.Title, style.TitleColor, style)

	body := textBox(slide, marginIn, bodyTopIn, 4.5, bodyHeightIn)
	writeText(body, rec.Content, bodyStyle(style))

	const imgX, imgW = 5.3, 4.2
	if data, mime, ok := reusableImage(images); ok {
		img := slide.CreateDrawingShape()
		img.SetImageData(data, mime)
		img.SetOffsetX(inches(imgX)).SetOffsetY(inches(bodyTopIn))
		img.SetWidth(inches(imgW)).SetHeight(inches(bodyHeightIn))
		return
	}

	box := textBox(slide, imgX, bodyTopIn, imgW, bodyHeightIn)
	box.SetFill(solidFill("FFF3F4F6"))
	box.SetBorder(&ppt.Border{Style: ppt.BorderSolid, Width: 12700, Color: ppt.NewColor(argb(style.AccentColor))})
	box.SetTextAnchor(ppt.TextAnchorMiddle)
	writeLines(box, []string{PlaceholderText}, textStyle{size: fontPlaceholder, color: style.AccentColor, font: style.BodyFont, center: true})
}

var embeddableImageTypes = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

// reusableImage returns the first extracted raster image whose file is
// still on disk.
func reusableImage(images []analysis.ExtractedImage) ([]byte, string, bool) {
	for _, img := range images {
		if !embeddableImageTypes[strings.ToLower(img.FileType)] {
			continue
		}
		data, err := os.ReadFile(img.FilePath)
		if err != nil || len(data) == 0 {
			continue
		}
		return data, mimetype.Detect(data).String(), true
	}
	return nil, "", false
}

// buildConclusionSlide: centered title and body stacked vertically.
func buildConclusionSlide(slide *ppt.Slide, rec SlideContent, style StyleContext, _ []analysis.ExtractedImage) {
	title := textBox(slide, marginIn, 1.2, contentWidthIn, 1.0)
	title.SetTextAnchor(ppt.TextAnchorMiddle)
	writeLines(title, []string{rec.Title}, textStyle{size: fontClosing, bold: true, color: style.TitleColor, font: style.TitleFont, center: true})

	body := textBox(slide, 1.0, 2.5, slideWidthIn-2.0, 2.4)
	writeText(body, rec.Content, textStyle{size: fontClosingBody, color: style.TextColor, font: style.BodyFont, center: true})

	bar := textBox(slide, 0, slideHeightIn-0.12, slideWidthIn, 0.12)
	bar.SetFill(solidFill(argb(style.AccentColor)))
}
