package adapters

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"urdf2sem/internal/ports"
)

// ignoreMarkers are files that exclude a directory tree from package
// discovery, as understood by catkin, colcon and ament.
var ignoreMarkers = []string{"CATKIN_IGNORE", "COLCON_IGNORE", "AMENT_IGNORE"}

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindPackageXML lists package manifests below root. A directory holding a
// package.xml is a package and is not searched further.
func (a WorkspaceAdapter) FindPackageXML(root string) ([]string, error) {
	var paths []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package search root is empty")
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldSkipWorkspaceDir(d.Name()) {
			return filepath.SkipDir
		}
		if hasIgnoreMarker(path) {
			return filepath.SkipDir
		}
		manifest := filepath.Join(path, "package.xml")
		if info, statErr := os.Stat(manifest); statErr == nil && !info.IsDir() {
			paths = append(paths, manifest)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan package path " + root).
			WithCause(err)
	}
	return paths, nil
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case "install", "build", "log", ".git", ".colcon", ".ros", "devel":
		return true
	default:
		return false
	}
}

func hasIgnoreMarker(dir string) bool {
	for _, marker := range ignoreMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
