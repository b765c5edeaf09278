package ports

import (
	"context"

	"urdf2sem/internal/types"
)

type StoredMap struct {
	MapName     string
	RobotName   string
	Source      string
	Individuals int
	StoredAt    string
}

// KnowledgeBasePort persists converted maps so several robots can be
// collected into one queryable store.
type KnowledgeBasePort interface {
	Store(ctx context.Context, source string, robotName string, doc types.Document) error
	Maps(ctx context.Context) ([]StoredMap, error)
	Individuals(ctx context.Context, mapName string) ([]types.Individual, error)
	Close() error
}
