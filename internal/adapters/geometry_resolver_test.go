package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackage(t *testing.T, dir string, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "<package format=\"3\"><name>" + name + "</name></package>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.xml"), []byte(content), 0644))
}

func newTestResolver(cfg GeometryResolverConfig) *GeometryResolverAdapter {
	return NewGeometryResolverAdapter(NewWorkspaceAdapter(), NewPackageXMLAdapter(), cfg)
}

func TestGeometryResolverPackageByManifestName(t *testing.T) {
	ws := t.TempDir()
	pkgDir := filepath.Join(ws, "src", "description_dir")
	writePackage(t, pkgDir, "robot_description")

	resolver := newTestResolver(GeometryResolverConfig{PackagePaths: []string{ws}})
	got, err := resolver.Resolve("package://robot_description/meshes/base.stl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pkgDir, "meshes", "base.stl"), got)
}

func TestGeometryResolverFirstRootWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePackage(t, filepath.Join(first, "pkg"), "shared")
	writePackage(t, filepath.Join(second, "pkg"), "shared")

	resolver := newTestResolver(GeometryResolverConfig{PackagePaths: []string{first, second}})
	got, err := resolver.Resolve("package://shared/a.dae")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "pkg", "a.dae"), got)
}

func TestGeometryResolverUnknownPackage(t *testing.T) {
	ws := t.TempDir()

	_, err := newTestResolver(GeometryResolverConfig{PackagePaths: []string{ws, filepath.Join(ws, "missing")}}).
		Resolve("package://nowhere/mesh.stl")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	got, err := newTestResolver(GeometryResolverConfig{PackagePaths: []string{ws}, KeepUnresolved: true}).
		Resolve("package://nowhere/mesh.stl")
	require.NoError(t, err)
	assert.Equal(t, "package://nowhere/mesh.stl", got)
}

func TestGeometryResolverModelPath(t *testing.T) {
	models := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(models, "table"), 0755))

	resolver := newTestResolver(GeometryResolverConfig{ModelPaths: []string{filepath.Join(models, "none"), models}})
	got, err := resolver.Resolve("model://table/meshes/top.dae")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(models, "table", "meshes", "top.dae"), got)

	_, err = resolver.Resolve("model://chair/seat.dae")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestGeometryResolverPlainPaths(t *testing.T) {
	resolver := newTestResolver(GeometryResolverConfig{BaseDir: "/robots/arm"})
	tests := []struct {
		name    string
		logical string
		want    string
	}{
		{name: "file scheme", logical: "file:///meshes/base.stl", want: "/meshes/base.stl"},
		{name: "absolute", logical: "/meshes/base.stl", want: "/meshes/base.stl"},
		{name: "relative", logical: "meshes/base.stl", want: filepath.Join("/robots/arm", "meshes", "base.stl")},
		{name: "other scheme", logical: "http://example.org/base.stl", want: "http://example.org/base.stl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.logical)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolver.Resolve("  ")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
