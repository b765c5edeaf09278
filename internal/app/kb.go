package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"urdf2sem/internal/ports"
)

func (s Service) KBList(ctx context.Context, req KBListRequest) (KBListResult, error) {
	kb, err := s.openExistingKnowledgeBase(req.KnowledgeBase)
	if err != nil {
		return KBListResult{}, err
	}
	defer kb.Close()
	maps, err := kb.Maps(ctx)
	if err != nil {
		return KBListResult{}, err
	}
	return KBListResult{Maps: maps}, nil
}

func (s Service) KBShow(ctx context.Context, req KBShowRequest) (KBShowResult, error) {
	mapName := strings.TrimSpace(req.MapName)
	if mapName == "" {
		return KBShowResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("map name is required")
	}
	kb, err := s.openExistingKnowledgeBase(req.KnowledgeBase)
	if err != nil {
		return KBShowResult{}, err
	}
	defer kb.Close()
	individuals, err := kb.Individuals(ctx, mapName)
	if err != nil {
		return KBShowResult{}, err
	}
	return KBShowResult{MapName: mapName, Individuals: individuals}, nil
}

// openExistingKnowledgeBase refuses to create a store as a side effect of
// a read.
func (s Service) openExistingKnowledgeBase(dir string) (ports.KnowledgeBasePort, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("knowledge base directory is required")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("knowledge base not found: %s", dir)).
			WithCause(err)
	}
	return s.openKnowledgeBase(dir)
}
