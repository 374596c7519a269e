package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/captcha"
)

const manifestName = "labels.json"

// Record is one manifest entry. Field names and types are fixed: training
// pipelines consume labels.json by key, so renaming a field is a breaking
// change for every downstream consumer.
type Record struct {
	Height        int    `json:"height"`
	Width         int    `json:"width"`
	ImageID       string `json:"image_id"`
	CaptchaString string `json:"captcha_string"`
	Filename      string `json:"filename"`
	Difficulty    string `json:"difficulty"`
}

// ImageID formats a 1-based sample ordinal as a zero-padded id, "000001"
// for the first sample of a run.
func ImageID(ordinal int) string {
	return fmt.Sprintf("%06d", ordinal)
}

// Writer owns the on-disk layout for one tier of a corpus: the images
// directory and the manifest next to it. Image writes go to distinct
// files, so concurrent WriteImage calls are safe; the manifest is written
// once, after all samples are done.
type Writer struct {
	tierDir   string
	imagesDir string
	tier      captcha.Tier
}

// NewWriter creates <root>/<tier>/images/ and returns a writer rooted
// there.
func NewWriter(root string, tier captcha.Tier) (*Writer, error) {
	tierDir := filepath.Join(root, string(tier))
	imagesDir := filepath.Join(tierDir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create %s: %w", imagesDir, err)
	}
	return &Writer{tierDir: tierDir, imagesDir: imagesDir, tier: tier}, nil
}

// Tier returns the difficulty tier this writer produces.
func (w *Writer) Tier() captcha.Tier { return w.tier }

// ImagesDir returns the directory image files are written to.
func (w *Writer) ImagesDir() string { return w.imagesDir }

// ManifestPath returns the path labels.json is written to.
func (w *Writer) ManifestPath() string { return filepath.Join(w.tierDir, manifestName) }

// ImagePath returns the path for the image with the given id.
func (w *Writer) ImagePath(id string) string {
	return filepath.Join(w.imagesDir, id+".png")
}

// WriteImage stores encoded PNG bytes under <images>/<id>.png.
func (w *Writer) WriteImage(id string, png []byte) error {
	if err := os.WriteFile(w.ImagePath(id), png, 0o644); err != nil {
		return fmt.Errorf("dataset: write image %s: %w", id, err)
	}
	return nil
}

// WriteManifest stores the label records as indented JSON. A nil slice
// still produces a valid empty array so consumers never see "null".
func (w *Writer) WriteManifest(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode manifest: %w", err)
	}
	if err := os.WriteFile(w.ManifestPath(), data, 0o644); err != nil {
		return fmt.Errorf("dataset: write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a previously written labels.json.
func ReadManifest(path string) ([]Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-chosen manifest path
	if err != nil {
		return nil, fmt.Errorf("dataset: read manifest: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset: decode manifest: %w", err)
	}
	return records, nil
}
