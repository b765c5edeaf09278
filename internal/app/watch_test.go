package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urdf2sem/tests/testutil"
)

// scriptedWatcher runs a fixed sequence of edits, firing onChange after each.
type scriptedWatcher struct {
	edits []func() error
}

func (w scriptedWatcher) Watch(ctx context.Context, _ string, onChange func(ctx context.Context) error) error {
	for _, edit := range w.edits {
		if err := edit(); err != nil {
			return err
		}
		if err := onChange(ctx); err != nil {
			return err
		}
	}
	return nil
}

func TestWatchReconvertsAfterChanges(t *testing.T) {
	dir := testutil.CopyFixtures(t)
	input := filepath.Join(dir, "two_link.urdf")
	broken, err := os.ReadFile(filepath.Join(dir, "missing_child.urdf"))
	require.NoError(t, err)
	chain, err := os.ReadFile(filepath.Join(dir, "chain.urdf"))
	require.NoError(t, err)

	service := newTestService()
	service.Watcher = scriptedWatcher{edits: []func() error{
		func() error { return os.WriteFile(input, broken, 0644) },
		func() error { return os.WriteFile(input, chain, 0644) },
	}}

	var robots []string
	var failures int
	err = service.Watch(t.Context(), WatchRequest{
		Convert: ConvertRequest{Input: input},
		OnResult: func(result ConvertResult) {
			robots = append(robots, result.Summary.RobotName)
		},
		OnError: func(error) { failures++ },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"two_link", "chain"}, robots)
	assert.Equal(t, 1, failures)
}

func TestWatchFailsWhenFirstConversionFails(t *testing.T) {
	service := newTestService()
	service.Watcher = scriptedWatcher{}
	err := service.Watch(t.Context(), WatchRequest{
		Convert: ConvertRequest{Input: filepath.Join(t.TempDir(), "missing.urdf")},
	})
	require.Error(t, err)
}
