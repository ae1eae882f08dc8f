package analysis

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/vraghavans1/auto-ppt-generator/container"
)

// AnalyzeStructure counts slides, layouts and masters and reads the layout
// names of the first master. It never fails: an internal fault yields the
// structure fallback.
func AnalyzeStructure(c *container.Container) StructureInfo {
	info, _ := analyzeStructure(c)
	return info
}

func analyzeStructure(c *container.Container) (info StructureInfo, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			info, ok = structureFallback(), false
		}
	}()

	info = StructureInfo{
		SlideCount:  len(c.List(container.SlidePattern)),
		LayoutCount: len(c.List(container.SlideLayoutPattern)),
		MasterCount: len(c.List(container.SlideMasterPattern)),
	}
	info.LayoutNames = layoutNames(c)
	return info, true
}

// layoutNames prefers the master's own layout order, then the layout parts
// in numeric order, then DefaultLayoutNames.
func layoutNames(c *container.Container) []string {
	if names := masterLayoutNames(c); len(names) > 0 {
		return names
	}
	parts := c.List(container.SlideLayoutPattern)
	container.SortByNumber(parts)
	var names []string
	for _, part := range parts {
		if name := layoutName(c, part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}
	return append([]string(nil), DefaultLayoutNames...)
}

func masterLayoutNames(c *container.Container) []string {
	master := parsePart(c, container.SlideMasterPart)
	if master == nil {
		return nil
	}
	targets := relationshipTargets(c, container.SlideMasterPart)
	if len(targets) == 0 {
		return nil
	}

	var names []string
	for _, n := range xmlquery.Find(master, "//*[local-name()='sldLayoutIdLst']/*[local-name()='sldLayoutId']") {
		part, ok := targets[relationshipID(n)]
		if !ok {
			continue
		}
		if name := layoutName(c, part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func layoutName(c *container.Container, part string) string {
	doc := parsePart(c, part)
	if doc == nil {
		return ""
	}
	if n := xmlquery.FindOne(doc, "//*[local-name()='cSld']"); n != nil {
		return strings.TrimSpace(n.SelectAttr("name"))
	}
	return ""
}

// relationshipTargets maps relationship ids of part to resolved part names.
func relationshipTargets(c *container.Container, part string) map[string]string {
	doc := parsePart(c, container.RelsPath(part))
	if doc == nil {
		return nil
	}
	targets := make(map[string]string)
	for _, rel := range xmlquery.Find(doc, "//*[local-name()='Relationship']") {
		if strings.EqualFold(rel.SelectAttr("TargetMode"), "External") {
			continue
		}
		id, target := rel.SelectAttr("Id"), rel.SelectAttr("Target")
		if id == "" || target == "" {
			continue
		}
		targets[id] = container.ResolveTarget(part, target)
	}
	return targets
}

// relationshipID returns the namespaced r:id of n. The element also carries
// an unprefixed id, so the attribute is picked by namespace.
func relationshipID(n *xmlquery.Node) string {
	for _, a := range n.Attr {
		if a.Name.Local == "id" && a.Name.Space != "" {
			return a.Value
		}
	}
	return ""
}

func parsePart(c *container.Container, name string) *xmlquery.Node {
	data, ok := c.Part(name)
	if !ok {
		return nil
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return doc
}
