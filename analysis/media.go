package analysis

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vraghavans1/auto-ppt-generator/container"
	"github.com/vraghavans1/auto-ppt-generator/logger"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".emf":  true,
	".wmf":  true,
}

// MediaExtractor copies template images into a working directory.
type MediaExtractor struct {
	imagesDir string
	log       *logger.Logger
}

// NewMediaExtractor creates an extractor writing into imagesDir.
func NewMediaExtractor(imagesDir string, log *logger.Logger) *MediaExtractor {
	if log == nil {
		log = logger.Discard()
	}
	return &MediaExtractor{imagesDir: imagesDir, log: log}
}

// Dir returns the directory extracted images are written to.
func (m *MediaExtractor) Dir() string {
	return m.imagesDir
}

// Extract writes every image part under ppt/media/ to the images directory
// as <id>_<name> and describes it. Parts that cannot be read or written are
// skipped; if the directory cannot be created nothing is extracted.
func (m *MediaExtractor) Extract(c *container.Container, templateName string) (images []ExtractedImage) {
	log := m.log.WithTemplate(templateName)
	images = []ExtractedImage{}
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("media extraction panicked: %v", r)
			removeExtracted(images, log)
			images = []ExtractedImage{}
		}
	}()

	if err := os.MkdirAll(m.imagesDir, 0o755); err != nil {
		log.WithError(err).Warn("cannot create images directory, skipping media")
		return images
	}

	parts := mediaParts(c)
	if len(parts) == 0 {
		return images
	}
	contexts := slideContexts(c)

	for _, part := range parts {
		img, err := m.extractOne(c, part, templateName)
		if err != nil {
			log.WithFields(logrus.Fields{"part": part}).WithError(err).Warn("skipping media part")
			continue
		}
		img.SlideContext = contexts[part]
		images = append(images, img)
	}
	log.Debugf("extracted %d of %d media parts", len(images), len(parts))
	return images
}

// removeExtracted deletes the files of images that will not be returned,
// since callers have no id to clean them up by.
func removeExtracted(images []ExtractedImage, log *logrus.Entry) {
	for _, img := range images {
		if err := os.Remove(img.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("cannot remove %s", img.FilePath)
		}
	}
}

func (m *MediaExtractor) extractOne(c *container.Container, part, templateName string) (ExtractedImage, error) {
	data, ok := c.Part(part)
	if !ok {
		return ExtractedImage{}, errors.New("unreadable part")
	}

	id := uuid.NewString()
	name := path.Base(part)
	filePath := filepath.Join(m.imagesDir, id+"_"+name)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return ExtractedImage{}, err
	}

	return ExtractedImage{
		ID:             id,
		OriginalName:   name,
		FilePath:       filePath,
		FileType:       strings.TrimPrefix(strings.ToLower(path.Ext(name)), "."),
		MimeType:       mimetype.Detect(data).String(),
		Size:           int64(len(data)),
		SourceTemplate: templateName,
		Description:    "Extracted from " + templateName,
	}, nil
}

// Cleanup removes extracted files whose names start with idPrefix and
// returns how many were removed. An empty prefix is rejected.
func (m *MediaExtractor) Cleanup(idPrefix string) (int, error) {
	if idPrefix == "" {
		return 0, errors.New("cleanup prefix must not be empty")
	}
	entries, err := os.ReadDir(m.imagesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var removed int
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), idPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(m.imagesDir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		m.log.Infof("removed %d extracted images with prefix %s", removed, idPrefix)
	}
	return removed, errors.Join(errs...)
}

// mediaParts returns the image parts in numeric order.
func mediaParts(c *container.Container) []string {
	var parts []string
	for _, name := range c.ListPrefix(container.MediaPrefix) {
		if imageExtensions[strings.ToLower(path.Ext(name))] {
			parts = append(parts, name)
		}
	}
	container.SortByNumber(parts)
	return parts
}

// slideContexts maps each media part to the first slide that references it,
// e.g. "Slide 3".
func slideContexts(c *container.Container) map[string]string {
	slides := c.List(container.SlidePattern)
	container.SortByNumber(slides)

	contexts := make(map[string]string)
	for _, slide := range slides {
		label := "Slide " + container.SlidePattern.FindStringSubmatch(slide)[1]
		for _, target := range relationshipTargets(c, slide) {
			if !strings.HasPrefix(target, container.MediaPrefix) {
				continue
			}
			if _, seen := contexts[target]; !seen {
				contexts[target] = label
			}
		}
	}
	return contexts
}
