package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
)

const (
	schemePackage = "package://"
	schemeModel   = "model://"
	schemeFile    = "file://"
)

type GeometryResolverConfig struct {
	// PackagePaths are roots searched for ROS packages (package://).
	PackagePaths []string
	// ModelPaths are Gazebo model directories (model://).
	ModelPaths []string
	// BaseDir anchors relative mesh paths, normally the URDF directory.
	BaseDir string
	// KeepUnresolved returns the logical path instead of failing when a
	// package or model cannot be found.
	KeepUnresolved bool
}

// GeometryResolverAdapter maps URDF mesh references to filesystem paths.
type GeometryResolverAdapter struct {
	workspace  ports.WorkspacePort
	packageXML ports.PackageXMLPort
	cfg        GeometryResolverConfig

	mu       sync.Mutex
	packages map[string]string
}

func NewGeometryResolverAdapter(workspace ports.WorkspacePort, packageXML ports.PackageXMLPort, cfg GeometryResolverConfig) *GeometryResolverAdapter {
	return &GeometryResolverAdapter{
		workspace:  workspace,
		packageXML: packageXML,
		cfg:        cfg,
	}
}

func (a *GeometryResolverAdapter) Resolve(logical string) (string, error) {
	logical = strings.TrimSpace(logical)
	switch {
	case logical == "":
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("geometry path is empty")
	case strings.HasPrefix(logical, schemePackage):
		return a.resolvePackage(logical)
	case strings.HasPrefix(logical, schemeModel):
		return a.resolveModel(logical)
	case strings.HasPrefix(logical, schemeFile):
		return strings.TrimPrefix(logical, schemeFile), nil
	case strings.Contains(logical, "://"):
		return logical, nil
	case filepath.IsAbs(logical) || a.cfg.BaseDir == "":
		return logical, nil
	default:
		return filepath.Join(a.cfg.BaseDir, logical), nil
	}
}

func (a *GeometryResolverAdapter) resolvePackage(logical string) (string, error) {
	name, rest := splitLogical(strings.TrimPrefix(logical, schemePackage))
	packages, err := a.packageIndex()
	if err != nil {
		return "", err
	}
	dir, ok := packages[name]
	if !ok {
		return a.unresolved(logical, fmt.Sprintf("package %s not found in package path", name))
	}
	return filepath.Join(dir, rest), nil
}

func (a *GeometryResolverAdapter) resolveModel(logical string) (string, error) {
	name, rest := splitLogical(strings.TrimPrefix(logical, schemeModel))
	for _, root := range a.cfg.ModelPaths {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Join(candidate, rest), nil
		}
	}
	return a.unresolved(logical, fmt.Sprintf("model %s not found in model path", name))
}

func (a *GeometryResolverAdapter) unresolved(logical string, msg string) (string, error) {
	if a.cfg.KeepUnresolved {
		log.Warn().Str("path", logical).Msg(msg)
		return logical, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

// packageIndex scans the package path once and maps package names to
// directories. The first root listing a package wins.
func (a *GeometryResolverAdapter) packageIndex() (map[string]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.packages != nil {
		return a.packages, nil
	}
	packages := map[string]string{}
	for _, root := range a.cfg.PackagePaths {
		if _, err := os.Stat(root); err != nil {
			log.Debug().Str("root", root).Msg("skipping missing package path entry")
			continue
		}
		manifests, err := a.workspace.FindPackageXML(root)
		if err != nil {
			return nil, err
		}
		names, err := a.packageXML.ParsePackageNames(manifests)
		if err != nil {
			return nil, err
		}
		for i, manifest := range manifests {
			dir := filepath.Dir(manifest)
			name := names[i]
			if name == "" {
				name = filepath.Base(dir)
			}
			if existing, found := packages[name]; found {
				log.Debug().Str("package", name).Str("kept", existing).Str("ignored", dir).Msg("duplicate package")
				continue
			}
			packages[name] = dir
		}
	}
	a.packages = packages
	return packages, nil
}

func splitLogical(value string) (string, string) {
	name, rest, _ := strings.Cut(value, "/")
	return name, rest
}

var _ ports.GeometryResolverPort = (*GeometryResolverAdapter)(nil)
