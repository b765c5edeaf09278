package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

type BatchManifestAdapter struct{}

func NewBatchManifestAdapter() BatchManifestAdapter {
	return BatchManifestAdapter{}
}

// Load reads a batch manifest. Relative paths are resolved against the
// manifest directory.
func (a BatchManifestAdapter) Load(path string) (types.BatchManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BatchManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("batch manifest not found").
			WithCause(err)
	}
	var manifest types.BatchManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.BatchManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse batch manifest yaml").
			WithCause(err)
	}
	if err := validateManifest(manifest); err != nil {
		return types.BatchManifest{}, err
	}

	base := filepath.Dir(path)
	manifest.Defaults.OutputDir = resolveRelative(base, manifest.Defaults.OutputDir)
	for i := range manifest.Robots {
		manifest.Robots[i].Input = resolveRelative(base, manifest.Robots[i].Input)
		manifest.Robots[i].Output = resolveRelative(base, manifest.Robots[i].Output)
	}
	return manifest, nil
}

func validateManifest(manifest types.BatchManifest) error {
	if len(manifest.Robots) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("batch manifest lists no robots")
	}
	if err := validateModeFormat("defaults", manifest.Defaults.Mode, manifest.Defaults.Format); err != nil {
		return err
	}
	for i, entry := range manifest.Robots {
		if strings.TrimSpace(entry.Input) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("robots[%d] has no input", i))
		}
		if err := validateModeFormat(fmt.Sprintf("robots[%d]", i), entry.Mode, entry.Format); err != nil {
			return err
		}
	}
	return nil
}

func validateModeFormat(scope string, mode types.ConvertMode, format types.OutputFormat) error {
	switch mode {
	case "", types.ConvertModeAbsolute, types.ConvertModeRelative:
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: unknown mode %s", scope, mode))
	}
	switch format {
	case "", types.OutputFormatOWL, types.OutputFormatNTriples:
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: unknown format %s", scope, format))
	}
	return nil
}

func resolveRelative(base string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

var _ ports.BatchManifestPort = BatchManifestAdapter{}
