package analysis

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vraghavans1/auto-ppt-generator/container"
)

type part struct {
	name string
	data string
}

func buildTemplate(t *testing.T, parts ...part) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func openTemplate(t *testing.T, parts ...part) *container.Container {
	t.Helper()
	c, err := container.Open(buildTemplate(t, parts...))
	require.NoError(t, err)
	return c
}

const nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// themeXML covers every resolver: srgbClr, sysClr lastClr, a direct val
// attribute, a descendant *color attribute, an invalid value and a missing
// slot (accent3, folHlink).
const themeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme ` + nsDecl + ` name="Corporate">
  <a:themeElements>
    <a:clrScheme name="Corporate Colors">
      <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="1F497D"/></a:dk2>
      <a:lt2><a:srgbClr val="EEECE1"/></a:lt2>
      <a:accent1><a:srgbClr val="4f81bd"/></a:accent1>
      <a:accent2><a:srgbClr val="C0504D"/></a:accent2>
      <a:accent4><a:srgbClr val="ZZZZZZ"/></a:accent4>
      <a:accent5 val="123456"/>
      <a:accent6><a:custom fillColor="abcdef"/></a:accent6>
      <a:hlink><a:srgbClr val="0000FF"/></a:hlink>
    </a:clrScheme>
    <a:fontScheme name="Corporate Fonts">
      <a:majorFont><a:latin typeface="Georgia"/><a:ea typeface=""/></a:majorFont>
      <a:minorFont><a:latin typeface="Verdana"/></a:minorFont>
    </a:fontScheme>
  </a:themeElements>
</a:theme>`

const masterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster ` + nsDecl + `>
  <p:cSld/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="2147483650" r:id="rId2"/>
    <p:sldLayoutId id="2147483649" r:id="rId1"/>
  </p:sldLayoutIdLst>
</p:sldMaster>`

const masterRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout2.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>
</Relationships>`

const slide1RelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image2.JPEG"/>
</Relationships>`

func layoutXML(name string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sldLayout ` + nsDecl + `><p:cSld name="` + name + `"/></p:sldLayout>`
}

const slideXML = `<p:sld ` + nsDecl + `><p:cSld/></p:sld>`

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// fullTemplate is a three-slide template with two layouts, one master,
// three images and one non-image media part.
func fullTemplate() []part {
	return []part{
		{container.ContentTypesPart, `<Types/>`},
		{container.ThemePart, themeXML},
		{container.SlideMasterPart, masterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", layoutXML("Title Slide")},
		{"ppt/slideLayouts/slideLayout2.xml", layoutXML("Title Only")},
		{"ppt/slides/slide1.xml", slideXML},
		{"ppt/slides/_rels/slide1.xml.rels", slide1RelsXML},
		{"ppt/slides/slide2.xml", slideXML},
		{"ppt/slides/slide3.xml", slideXML},
		{"ppt/media/image1.png", string(pngBytes)},
		{"ppt/media/image2.JPEG", "\xff\xd8\xff\xe0jpeg-data"},
		{"ppt/media/chart.xml", "<c:chart/>"},
		{"ppt/media/image3.emf", "emf-data"},
	}
}
