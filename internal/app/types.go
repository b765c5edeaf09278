package app

import (
	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

// ResolveOptions control how mesh references are turned into paths.
type ResolveOptions struct {
	PackagePaths   []string
	ModelPaths     []string
	KeepUnresolved bool
}

type ConvertRequest struct {
	Input         string
	Output        string
	Overwrite     bool
	Mode          types.ConvertMode
	Format        types.OutputFormat
	Resolve       ResolveOptions
	Imports       []string
	NamespaceBase string
	KnowledgeBase string
}

type ConvertResult struct {
	Output  string
	Summary types.ConversionSummary
	Stored  bool
}

type BatchRequest struct {
	Manifest      string
	Workers       int
	Resolve       ResolveOptions
	Imports       []string
	NamespaceBase string
	KnowledgeBase string
}

type BatchResult struct {
	Results []ConvertResult
}

type WatchRequest struct {
	Convert ConvertRequest
	// OnResult is called after every successful conversion.
	OnResult func(ConvertResult)
	// OnError is called when a conversion fails; watching continues.
	OnError func(error)
}

type PoseRequest struct {
	Input      string
	Target     string
	RelativeTo string
}

type PoseResult struct {
	Robot      string
	Target     types.Frame
	RelativeTo types.Frame
	Transform  types.Transform
}

type KBListRequest struct {
	KnowledgeBase string
}

type KBListResult struct {
	Maps []ports.StoredMap
}

type KBShowRequest struct {
	KnowledgeBase string
	MapName       string
}

type KBShowResult struct {
	MapName     string
	Individuals []types.Individual
}
