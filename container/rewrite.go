package container

import (
	"archive/zip"
	"bytes"
	"sort"

	"github.com/vraghavans1/auto-ppt-generator/apperr"
)

// Rewrite returns a copy of the container's archive with the given parts
// replaced or added. Untouched parts are copied without recompression and
// keep their original order; new parts are appended.
func (c *Container) Rewrite(replacements map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	written := make(map[string]bool, len(replacements))
	for _, name := range c.names {
		if data, ok := replacements[name]; ok {
			if err := writeEntry(zw, name, data); err != nil {
				return nil, err
			}
			written[name] = true
			continue
		}
		if err := zw.Copy(c.files[name]); err != nil {
			return nil, apperr.WrapOperationError("copy "+name, err)
		}
	}

	// New parts: numbered ones by number, the rest by name.
	var extra []string
	for name := range replacements {
		if !written[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	SortByNumber(extra)
	for _, name := range extra {
		if err := writeEntry(zw, name, replacements[name]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, apperr.WrapOperationError("close archive", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return apperr.WrapOperationError("create "+name, err)
	}
	if _, err := w.Write(data); err != nil {
		return apperr.WrapOperationError("write "+name, err)
	}
	return nil
}
