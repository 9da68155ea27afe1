package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"github.com/KaramelBytes/fifaviz-cli/internal/utils"
)

// ManifestFile is written next to the charts when enabled.
const ManifestFile = "render_manifest.json"

// Manifest records what one run produced.
type Manifest struct {
	RunID     string     `json:"run_id"`
	Input     string     `json:"input"`
	Rows      int        `json:"rows"`
	DPI       float64    `json:"dpi"`
	CreatedAt time.Time  `json:"created_at"`
	Charts    []Artifact `json:"charts"`
}

func writeManifest(dir string, ds *dataset.Dataset, opt Options, res *Result) (string, error) {
	m := Manifest{
		RunID:     res.RunID,
		Input:     ds.Name,
		Rows:      ds.Len(),
		DPI:       opt.DPI,
		CreatedAt: time.Now().UTC(),
		Charts:    res.Charts,
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ManifestFile)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
