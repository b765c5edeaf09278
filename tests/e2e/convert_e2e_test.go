package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urdf2sem/tests/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "./cmd/urdf2sem"}, args...)...)
	cmd.Dir = testutil.RepoRoot(t)
	cmd.Env = append(os.Environ(), "GO111MODULE=on", "NO_COLOR=1", "ROS_PACKAGE_PATH=", "GAZEBO_MODEL_PATH=")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestConvertCommandE2E(t *testing.T) {
	dir := testutil.CopyFixtures(t)
	output := filepath.Join(dir, "out", "demo.owl")

	out, err := runCLI(t, "convert", filepath.Join(dir, "workspace", "src", "demo_description", "urdf", "demo.urdf"),
		"--output", output,
		"--mode", "relative",
		"--package-path", filepath.Join(dir, "workspace", "src"),
	)
	require.NoError(t, err, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	owl := string(data)
	assert.Contains(t, owl, "<rdf:RDF")
	assert.Contains(t, owl, filepath.Join(dir, "workspace", "src", "demo_description", "meshes", "base.stl"))
	assert.Contains(t, owl, "knowrob:relativeTo")
}

func TestConvertCommandMissingInputE2E(t *testing.T) {
	out, err := runCLI(t, "convert", filepath.Join(t.TempDir(), "nope.urdf"))
	require.Error(t, err)
	assert.Contains(t, out, "input not found")
}

func TestConvertCommandBrokenTreeE2E(t *testing.T) {
	dir := testutil.CopyFixtures(t)
	out, err := runCLI(t, "convert", filepath.Join(dir, "missing_child.urdf"))
	require.Error(t, err)
	assert.Contains(t, out, "InvalidJoint")
	assert.NoFileExists(t, filepath.Join(dir, "missing_child.owl"))
}

func TestBatchCommandE2E(t *testing.T) {
	dir := testutil.CopyFixtures(t)
	out, err := runCLI(t, "batch", "--manifest", filepath.Join(dir, "batch.yaml"), "--workers", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "batch complete: 3 robots")

	nt, err := os.ReadFile(filepath.Join(dir, "out", "chain.nt"))
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(nt)), "\n") {
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
}

func TestPoseCommandE2E(t *testing.T) {
	out, err := runCLI(t, "pose", testutil.Fixture(t, "chain.urdf"), "C", "--relative-to", "B")
	require.NoError(t, err, out)
	assert.Contains(t, out, "translation: 0.500000 0.000000 0.000000")
}
