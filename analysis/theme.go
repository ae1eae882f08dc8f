package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/vraghavans1/auto-ppt-generator/container"
)

var (
	errNoThemePart   = errors.New("theme part not found")
	errNoColorScheme = errors.New("theme has no clrScheme")
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// colorSlot binds a ColorScheme field to the clrScheme child it is read from.
type colorSlot struct {
	element string
	field   func(*ColorScheme) *string
}

var colorSlots = []colorSlot{
	{"lt1", func(cs *ColorScheme) *string { return &cs.Background1 }},
	{"dk1", func(cs *ColorScheme) *string { return &cs.Text1 }},
	{"lt2", func(cs *ColorScheme) *string { return &cs.Background2 }},
	{"dk2", func(cs *ColorScheme) *string { return &cs.Text2 }},
	{"accent1", func(cs *ColorScheme) *string { return &cs.Accent1 }},
	{"accent2", func(cs *ColorScheme) *string { return &cs.Accent2 }},
	{"accent3", func(cs *ColorScheme) *string { return &cs.Accent3 }},
	{"accent4", func(cs *ColorScheme) *string { return &cs.Accent4 }},
	{"accent5", func(cs *ColorScheme) *string { return &cs.Accent5 }},
	{"accent6", func(cs *ColorScheme) *string { return &cs.Accent6 }},
	{"hlink", func(cs *ColorScheme) *string { return &cs.Hyperlink }},
	{"folHlink", func(cs *ColorScheme) *string { return &cs.FollowedHyperlink }},
}

// colorResolver returns a candidate color for one slot element, or "".
type colorResolver func(slot *xmlquery.Node) string

// Tried in order; the first candidate that is six hex digits wins.
var colorResolvers = []colorResolver{
	srgbColor,
	systemColor,
	directColor,
	anyColorAttr,
}

func srgbColor(slot *xmlquery.Node) string {
	if n := xmlquery.FindOne(slot, ".//*[local-name()='srgbClr']"); n != nil {
		return n.SelectAttr("val")
	}
	return ""
}

func systemColor(slot *xmlquery.Node) string {
	if n := xmlquery.FindOne(slot, ".//*[local-name()='sysClr']"); n != nil {
		return n.SelectAttr("lastClr")
	}
	return ""
}

func directColor(slot *xmlquery.Node) string {
	return slot.SelectAttr("val")
}

// anyColorAttr scans descendants for an attribute whose name mentions
// "color" and whose value is a hex color.
func anyColorAttr(slot *xmlquery.Node) string {
	var found string
	var walk func(n *xmlquery.Node) bool
	walk = func(n *xmlquery.Node) bool {
		for _, a := range n.Attr {
			if strings.Contains(strings.ToLower(a.Name.Local), "color") && hexColor.MatchString(a.Value) {
				found = a.Value
				return true
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.ElementNode && walk(child) {
				return true
			}
		}
		return false
	}
	for child := slot.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && walk(child) {
			break
		}
	}
	return found
}

// resolveColor runs the resolvers against slot and returns "#RRGGBB", or
// fallback when no resolver yields a valid value.
func resolveColor(slot *xmlquery.Node, fallback string) string {
	if slot == nil {
		return fallback
	}
	for _, resolve := range colorResolvers {
		if v := resolve(slot); hexColor.MatchString(v) {
			return "#" + strings.ToUpper(v)
		}
	}
	return fallback
}

// ExtractTheme reads the theme part of c. It never fails: a missing or
// unreadable theme yields DefaultTheme.
func ExtractTheme(c *container.Container) ThemeData {
	theme, _ := extractTheme(c)
	return theme
}

// extractTheme is ExtractTheme that also reports why the default theme was
// substituted. The returned theme is usable even when err is non-nil.
func extractTheme(c *container.Container) (theme ThemeData, err error) {
	defer func() {
		if r := recover(); r != nil {
			theme, err = DefaultTheme(), fmt.Errorf("theme extraction panicked: %v", r)
		}
	}()

	data, ok := c.Part(container.ThemePart)
	if !ok {
		return DefaultTheme(), errNoThemePart
	}
	theme, err = ParseTheme(data)
	if err != nil {
		return DefaultTheme(), err
	}
	return theme, nil
}

// ParseTheme parses a theme part. Colors missing from the scheme fall back
// slot by slot and a missing font scheme gives the default font; a missing
// color scheme is an error.
func ParseTheme(data []byte) (ThemeData, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return ThemeData{}, fmt.Errorf("parse theme: %w", err)
	}

	clrScheme := xmlquery.FindOne(doc, "//*[local-name()='clrScheme']")
	if clrScheme == nil {
		return ThemeData{}, errNoColorScheme
	}
	fontScheme := xmlquery.FindOne(doc, "//*[local-name()='fontScheme']")

	theme := ThemeData{
		ColorSchemeName: clrScheme.SelectAttr("name"),
		EffectScheme:    map[string]string{},
	}
	if fontScheme != nil {
		theme.FontSchemeName = fontScheme.SelectAttr("name")
	}
	if root := xmlquery.FindOne(doc, "//*[local-name()='theme']"); root != nil {
		theme.Name = root.SelectAttr("name")
	}

	for _, s := range colorSlots {
		slot := xmlquery.FindOne(clrScheme, "./*[local-name()='"+s.element+"']")
		fallback := *s.field(&defaultColorScheme)
		*s.field(&theme.ColorScheme) = resolveColor(slot, fallback)
	}

	theme.FontScheme = FontScheme{
		MajorFont: latinTypeface(fontScheme, "majorFont"),
		MinorFont: latinTypeface(fontScheme, "minorFont"),
	}
	return theme, nil
}

func latinTypeface(fontScheme *xmlquery.Node, group string) string {
	if fontScheme == nil {
		return DefaultFont
	}
	n := xmlquery.FindOne(fontScheme, "./*[local-name()='"+group+"']/*[local-name()='latin']")
	if n == nil {
		return DefaultFont
	}
	if face := strings.TrimSpace(n.SelectAttr("typeface")); face != "" {
		return face
	}
	return DefaultFont
}
