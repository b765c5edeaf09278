package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urdf2sem/internal/types"
)

func TestBatchManifestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	content := `defaults:
  mode: relative
  format: nt
  output_dir: out
robots:
  - input: robots/box.urdf
  - input: /abs/arm.urdf
    output: arm.owl
    format: owl
    overwrite: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	manifest, err := NewBatchManifestAdapter().Load(path)
	require.NoError(t, err)

	overwrite := true
	want := types.BatchManifest{
		Defaults: types.BatchDefaults{
			Mode:      types.ConvertModeRelative,
			Format:    types.OutputFormatNTriples,
			OutputDir: filepath.Join(dir, "out"),
		},
		Robots: []types.BatchEntry{
			{Input: filepath.Join(dir, "robots", "box.urdf")},
			{Input: "/abs/arm.urdf", Output: filepath.Join(dir, "arm.owl"), Format: types.OutputFormatOWL, Overwrite: &overwrite},
		},
	}
	if diff := cmp.Diff(want, manifest); diff != "" {
		t.Fatalf("unexpected manifest (-want +got):\n%s", diff)
	}
}

func TestBatchManifestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no robots", content: "defaults:\n  mode: absolute\n"},
		{name: "missing input", content: "robots:\n  - output: a.owl\n"},
		{name: "bad mode", content: "robots:\n  - input: a.urdf\n    mode: sideways\n"},
		{name: "bad default format", content: "defaults:\n  format: turtle\nrobots:\n  - input: a.urdf\n"},
		{name: "bad yaml", content: "robots: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "batch.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := NewBatchManifestAdapter().Load(path)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestBatchManifestMissingFile(t *testing.T) {
	_, err := NewBatchManifestAdapter().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
