package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"urdf2sem/internal/adapters"
	"urdf2sem/internal/core"
	"urdf2sem/internal/ports"
	"urdf2sem/internal/shared"
	"urdf2sem/internal/types"
)

func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	kb, err := s.openKnowledgeBase(req.KnowledgeBase)
	if err != nil {
		return ConvertResult{}, err
	}
	if kb != nil {
		defer kb.Close()
	}
	return s.convert(ctx, req, kb)
}

// convert runs one conversion. Nothing is written unless the whole robot
// converts, and the output file is replaced atomically.
func (s Service) convert(ctx context.Context, req ConvertRequest, kb ports.KnowledgeBasePort) (ConvertResult, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	inputInfo, err := os.Stat(input)
	if err != nil {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("input not found: %s", input)).
			WithCause(err)
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return ConvertResult{}, err
	}
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return ConvertResult{}, err
	}
	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = shared.DefaultOutputPath(input, string(format))
	}
	if outputInfo, err := os.Stat(output); err == nil && os.SameFile(inputInfo, outputInfo) {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("output would replace the input: %s", output))
	}
	if !req.Overwrite {
		if _, err := os.Stat(output); err == nil {
			return ConvertResult{}, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("output already exists: %s (use --overwrite)", output))
		}
	}

	robot, err := s.Robots.Load(input)
	if err != nil {
		return ConvertResult{}, err
	}
	tree, err := core.NewKinematicTree(robot)
	if err != nil {
		return ConvertResult{}, wrapTopologyError(err)
	}

	absInput, err := filepath.Abs(input)
	if err != nil {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve input path").
			WithCause(err)
	}
	resolver := adapters.NewGeometryResolverAdapter(s.Workspace, s.PackageXML, adapters.GeometryResolverConfig{
		PackagePaths:   req.Resolve.PackagePaths,
		ModelPaths:     req.Resolve.ModelPaths,
		BaseDir:        filepath.Dir(absInput),
		KeepUnresolved: req.Resolve.KeepUnresolved,
	})
	opts := emitOptions(output, mode, req.NamespaceBase, req.Imports)
	emitter := core.NewGraphEmitter(tree, resolver, core.NewIDGenerator(s.idSeed()), opts)
	doc, summary, err := emitter.Emit(ctx)
	if err != nil {
		return ConvertResult{}, err
	}

	if err := s.Writer.Write(output, doc, format, req.Overwrite); err != nil {
		return ConvertResult{}, err
	}
	result := ConvertResult{Output: output, Summary: summary}
	if kb != nil {
		if err := kb.Store(ctx, absInput, robot.Name, doc); err != nil {
			return ConvertResult{}, err
		}
		result.Stored = true
	}
	return result, nil
}

func emitOptions(output string, mode types.ConvertMode, namespaceBase string, imports []string) core.EmitOptions {
	namespace := shared.NamespaceFromOutput(output)
	if types.NamespaceURI(namespace) != "" {
		namespace += "_map"
	}
	base := strings.TrimSpace(namespaceBase)
	if base == "" {
		base = types.DefaultNamespaceBase
	}
	if imports == nil {
		imports = types.DefaultImports
	}
	return core.EmitOptions{
		Mode:       mode,
		Namespace:  namespace,
		MapURIBase: base + filepath.Base(output),
		Imports:    imports,
	}
}

// idSeed varies map names between runs so maps stored in one knowledge
// base do not collide.
func (s Service) idSeed() uint64 {
	if s.Clock == nil {
		return 0
	}
	return uint64(s.Clock().UnixNano())
}

func (s Service) openKnowledgeBase(dir string) (ports.KnowledgeBasePort, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}
	if s.OpenKB == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("knowledge base is not configured")
	}
	return s.OpenKB(dir, s.Clock)
}

func wrapTopologyError(err error) error {
	var topo *core.TopologyError
	if !errors.As(err, &topo) {
		return err
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid kinematic tree: %s", topo.Error())).
		WithCause(topo)
}

func normalizeFormat(format types.OutputFormat) (types.OutputFormat, error) {
	switch types.OutputFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case "", types.OutputFormatOWL:
		return types.OutputFormatOWL, nil
	case types.OutputFormatNTriples:
		return types.OutputFormatNTriples, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown output format: %s (expected owl or nt)", format))
	}
}

func normalizeMode(mode types.ConvertMode) (types.ConvertMode, error) {
	switch types.ConvertMode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case "", types.ConvertModeAbsolute:
		return types.ConvertModeAbsolute, nil
	case types.ConvertModeRelative:
		return types.ConvertModeRelative, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown mode: %s (expected absolute or relative)", mode))
	}
}
