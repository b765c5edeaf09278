package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/sync/errgroup"

	"urdf2sem/internal/shared"
	"urdf2sem/internal/types"
)

// Batch converts every robot listed in a manifest. Conversions run in
// parallel and share nothing but the knowledge base; the first failure
// cancels the conversions that have not started yet.
func (s Service) Batch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	manifest, err := s.Manifests.Load(req.Manifest)
	if err != nil {
		return BatchResult{}, err
	}
	requests := make([]ConvertRequest, 0, len(manifest.Robots))
	outputs := map[string]string{}
	for _, entry := range manifest.Robots {
		convert := batchConvertRequest(manifest.Defaults, entry, req)
		key, err := filepath.Abs(convert.Output)
		if err != nil {
			key = convert.Output
		}
		if previous, dup := outputs[key]; dup {
			return BatchResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s and %s both write %s", previous, entry.Input, convert.Output))
		}
		outputs[key] = entry.Input
		requests = append(requests, convert)
	}

	kb, err := s.openKnowledgeBase(req.KnowledgeBase)
	if err != nil {
		return BatchResult{}, err
	}
	if kb != nil {
		defer kb.Close()
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]ConvertResult, len(requests))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, convert := range requests {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := s.convert(groupCtx, convert, kb)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return BatchResult{}, err
	}
	return BatchResult{Results: results}, nil
}

func batchConvertRequest(defaults types.BatchDefaults, entry types.BatchEntry, req BatchRequest) ConvertRequest {
	mode := entry.Mode
	if mode == "" {
		mode = defaults.Mode
	}
	format := entry.Format
	if format == "" {
		format = defaults.Format
	}
	if format == "" {
		format = types.OutputFormatOWL
	}
	overwrite := defaults.Overwrite
	if entry.Overwrite != nil {
		overwrite = *entry.Overwrite
	}
	output := entry.Output
	if output == "" {
		output = shared.DefaultOutputPath(entry.Input, string(format))
		if defaults.OutputDir != "" {
			output = filepath.Join(defaults.OutputDir, filepath.Base(output))
		}
	}
	return ConvertRequest{
		Input:         entry.Input,
		Output:        output,
		Overwrite:     overwrite,
		Mode:          mode,
		Format:        format,
		Resolve:       req.Resolve,
		Imports:       req.Imports,
		NamespaceBase: req.NamespaceBase,
	}
}
