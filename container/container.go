// Package container reads the zip archive that holds a presentation's XML
// and media parts.
package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vraghavans1/auto-ppt-generator/apperr"
)

// Limits applied while opening a container. A part larger than
// MaxPartSize or an archive with more than MaxEntries files is rejected.
const (
	MaxPartSize  = 50 << 20
	MaxTotalSize = 200 << 20
	MaxEntries   = 10000
)

// Well-known part paths.
const (
	ThemePart        = "ppt/theme/theme1.xml"
	SlideMasterPart  = "ppt/slideMasters/slideMaster1.xml"
	MediaPrefix      = "ppt/media/"
	ContentTypesPart = "[Content_Types].xml"
)

// Part name patterns used by the analyzers.
var (
	SlidePattern       = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	SlideLayoutPattern = regexp.MustCompile(`^ppt/slideLayouts/slideLayout(\d+)\.xml$`)
	SlideMasterPattern = regexp.MustCompile(`^ppt/slideMasters/slideMaster(\d+)\.xml$`)
)

// Container is an opened compound document. It is read-only and safe for
// concurrent use once Open returns.
type Container struct {
	names []string
	files map[string]*zip.File
}

// Open parses data as a zip archive. Failures wrap apperr.ErrInvalidContainer.
func Open(data []byte) (*Container, error) {
	if len(data) == 0 {
		return nil, apperr.WrapError("container", "Open", apperr.Kind(apperr.ErrInvalidContainer, fmt.Errorf("empty input")))
	}
	if len(data) > MaxTotalSize {
		return nil, apperr.WrapError("container", "Open", apperr.Kind(apperr.ErrInvalidContainer,
			fmt.Errorf("archive size %d exceeds maximum allowed (%d bytes)", len(data), MaxTotalSize)))
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperr.WrapError("container", "Open", apperr.Kind(apperr.ErrInvalidContainer, err))
	}
	if len(zr.File) > MaxEntries {
		return nil, apperr.WrapError("container", "Open", apperr.Kind(apperr.ErrInvalidContainer,
			fmt.Errorf("archive contains too many entries (%d > %d)", len(zr.File), MaxEntries)))
	}

	c := &Container{
		names: make([]string, 0, len(zr.File)),
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if _, dup := c.files[f.Name]; dup {
			continue
		}
		c.names = append(c.names, f.Name)
		c.files[f.Name] = f
	}
	return c, nil
}

// Has reports whether a part exists.
func (c *Container) Has(name string) bool {
	_, ok := c.files[name]
	return ok
}

// Part returns the raw bytes of a part. A missing or unreadable part
// yields (nil, false); absence is not an error.
func (c *Container) Part(name string) ([]byte, bool) {
	f, ok := c.files[name]
	if !ok {
		return nil, false
	}
	data, err := readPart(f)
	if err != nil {
		return nil, false
	}
	return data, true
}

// PartText is Part decoded as a string.
func (c *Container) PartText(name string) (string, bool) {
	data, ok := c.Part(name)
	if !ok {
		return "", false
	}
	return string(data), true
}

// Names returns every part name in archive order.
func (c *Container) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// List returns the part names matching pattern, in archive order.
func (c *Container) List(pattern *regexp.Regexp) []string {
	var out []string
	for _, name := range c.names {
		if pattern.MatchString(name) {
			out = append(out, name)
		}
	}
	return out
}

// ListPrefix returns the part names under prefix, in archive order.
func (c *Container) ListPrefix(prefix string) []string {
	var out []string
	for _, name := range c.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// RelsPath returns the relationships part that belongs to partName,
// e.g. ppt/slideMasters/_rels/slideMaster1.xml.rels.
func RelsPath(partName string) string {
	return path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
}

// ResolveTarget resolves a relationship target relative to the part that
// owns the relationship.
func ResolveTarget(partName, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(partName), target))
}

var trailingNumber = regexp.MustCompile(`(\d+)\.[A-Za-z]+$`)

// SortByNumber orders part names by the number before their extension so
// slide2 sorts before slide10. Names without a number keep their relative
// order after the numbered ones.
func SortByNumber(names []string) {
	num := func(name string) int {
		m := trailingNumber.FindStringSubmatch(name)
		if m == nil {
			return -1
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return -1
		}
		return n
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, nj := num(names[i]), num(names[j])
		if ni < 0 || nj < 0 {
			return ni >= 0 && nj < 0
		}
		return ni < nj
	})
}

func readPart(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > MaxPartSize {
		return nil, fmt.Errorf("part %s exceeds maximum allowed size (%d bytes)", f.Name, MaxPartSize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, apperr.WrapOperationError("open "+f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxPartSize+1))
	if err != nil {
		return nil, apperr.WrapOperationError("read "+f.Name, err)
	}
	if len(data) > MaxPartSize {
		return nil, fmt.Errorf("part %s actual size exceeds maximum allowed size", f.Name)
	}
	return data, nil
}
