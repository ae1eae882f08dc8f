package export

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
)

const nsDrawingML = "http://schemas.openxmlformats.org/drawingml/2006/main"

// themePartXML renders theme as a complete theme part so the generated
// master inherits the template palette and fonts.
func themePartXML(theme analysis.ThemeData) []byte {
	cs := theme.ColorScheme
	name := theme.Name
	if name == "" {
		name = "Template Theme"
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&b, `<a:theme xmlns:a="%s" name="%s"><a:themeElements>`, nsDrawingML, xmlEscape(name))

	fmt.Fprintf(&b, `<a:clrScheme name="%s">`, xmlEscape(orDefault(theme.ColorSchemeName, name)))
	for _, slot := range []struct{ element, value string }{
		{"dk1", cs.Text1},
		{"lt1", cs.Background1},
		{"dk2", cs.Text2},
		{"lt2", cs.Background2},
		{"accent1", cs.Accent1},
		{"accent2", cs.Accent2},
		{"accent3", cs.Accent3},
		{"accent4", cs.Accent4},
		{"accent5", cs.Accent5},
		{"accent6", cs.Accent6},
		{"hlink", cs.Hyperlink},
		{"folHlink", cs.FollowedHyperlink},
	} {
		fmt.Fprintf(&b, `<a:%s><a:srgbClr val="%s"/></a:%s>`, slot.element, rgb(slot.value), slot.element)
	}
	b.WriteString(`</a:clrScheme>`)

	fmt.Fprintf(&b, `<a:fontScheme name="%s">`, xmlEscape(orDefault(theme.FontSchemeName, name)))
	fmt.Fprintf(&b, `<a:majorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`,
		xmlEscape(orDefault(theme.FontScheme.MajorFont, analysis.DefaultFont)))
	fmt.Fprintf(&b, `<a:minorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`,
		xmlEscape(orDefault(theme.FontScheme.MinorFont, analysis.DefaultFont)))
	b.WriteString(`</a:fontScheme>`)

	b.WriteString(formatScheme)
	b.WriteString(`</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`)
	return []byte(b.String())
}

// formatScheme is the minimal schema-valid fill, line, effect and
// background list set (three entries each), all driven by phClr.
const formatScheme = `<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="50000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="80000"/></a:schemeClr></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="6350" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln>` +
	`<a:ln w="12700" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln>` +
	`<a:ln w="19050" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/><a:miter lim="800000"/></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="95000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="90000"/></a:schemeClr></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>`

// rgb strips '#' and falls back to black for anything that is not six hex
// digits.
func rgb(color string) string {
	v := strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(v) != 6 {
		return "000000"
	}
	for _, c := range v {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return "000000"
		}
	}
	return v
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
