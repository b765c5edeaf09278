package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

// Key prefixes
const (
	prefixMap        = "m:" // map metadata
	prefixIndividual = "i:" // individuals, keyed by map and position
)

// BadgerKnowledgeBase stores converted maps in a BadgerDB directory. An empty
// directory opens an in-memory store.
type BadgerKnowledgeBase struct {
	db    *badger.DB
	mu    sync.Mutex
	Clock func() time.Time
}

func OpenBadgerKnowledgeBase(dir string) (*BadgerKnowledgeBase, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to open knowledge base %s", dir)).
			WithCause(err)
	}
	log.Debug().Str("dir", dir).Msg("knowledge base opened")
	return &BadgerKnowledgeBase{db: db, Clock: time.Now}, nil
}

type storedIndividual struct {
	ID         string            `json:"id"`
	Statements []storedStatement `json:"statements"`
}

type storedStatement struct {
	Kind      types.StatementKind   `json:"kind"`
	Predicate string                `json:"predicate"`
	Object    string                `json:"object"`
	Datatype  types.LiteralDatatype `json:"datatype,omitempty"`
}

type storedMap struct {
	MapName     string `json:"map_name"`
	RobotName   string `json:"robot_name"`
	Source      string `json:"source"`
	Individuals int    `json:"individuals"`
	StoredAt    string `json:"stored_at"`
}

func (b *BadgerKnowledgeBase) Store(ctx context.Context, source string, robotName string, doc types.Document) error {
	if doc.MapName == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document has no map name")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(mapKey(doc.MapName))
		return err
	})
	switch {
	case err == nil:
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("map %s is already stored", doc.MapName))
	case !errors.Is(err, badger.ErrKeyNotFound):
		return kbError("failed to look up map", err)
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for i, individual := range doc.Individuals {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(toStoredIndividual(individual))
		if err != nil {
			return kbError("failed to encode individual", err)
		}
		if err := wb.Set(individualKey(doc.MapName, i), data); err != nil {
			return kbError("failed to stage individual", err)
		}
	}
	meta, err := json.Marshal(storedMap{
		MapName:     doc.MapName,
		RobotName:   robotName,
		Source:      source,
		Individuals: len(doc.Individuals),
		StoredAt:    b.Clock().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return kbError("failed to encode map", err)
	}
	if err := wb.Set(mapKey(doc.MapName), meta); err != nil {
		return kbError("failed to stage map", err)
	}
	if err := wb.Flush(); err != nil {
		return kbError("failed to store map", err)
	}
	log.Debug().Str("map", doc.MapName).Int("individuals", len(doc.Individuals)).Msg("map stored")
	return nil
}

// Maps lists stored maps ordered by name.
func (b *BadgerKnowledgeBase) Maps(ctx context.Context) ([]ports.StoredMap, error) {
	var maps []ports.StoredMap
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixMap)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var meta storedMap
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return err
			}
			maps = append(maps, ports.StoredMap{
				MapName:     meta.MapName,
				RobotName:   meta.RobotName,
				Source:      meta.Source,
				Individuals: meta.Individuals,
				StoredAt:    meta.StoredAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, kbError("failed to list maps", err)
	}
	sort.Slice(maps, func(i, j int) bool {
		return maps[i].MapName < maps[j].MapName
	})
	return maps, nil
}

// Individuals returns the individuals of mapName in emission order.
func (b *BadgerKnowledgeBase) Individuals(ctx context.Context, mapName string) ([]types.Individual, error) {
	var individuals []types.Individual
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(mapKey(mapName)); err != nil {
			return err
		}
		found = true
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixIndividual + mapName + ":")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var stored storedIndividual
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			}); err != nil {
				return err
			}
			individuals = append(individuals, fromStoredIndividual(stored))
		}
		return nil
	})
	if !found && errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("map %s not found", mapName))
	}
	if err != nil {
		return nil, kbError("failed to read map", err)
	}
	return individuals, nil
}

func (b *BadgerKnowledgeBase) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

func mapKey(mapName string) []byte {
	return []byte(prefixMap + mapName)
}

// individualKey zero pads the position so key order matches emission order.
func individualKey(mapName string, index int) []byte {
	return []byte(fmt.Sprintf("%s%s:%08d", prefixIndividual, mapName, index))
}

func toStoredIndividual(individual types.Individual) storedIndividual {
	out := storedIndividual{ID: individual.ID}
	for _, statement := range individual.Statements {
		out.Statements = append(out.Statements, storedStatement(statement))
	}
	return out
}

func fromStoredIndividual(stored storedIndividual) types.Individual {
	out := types.Individual{ID: stored.ID}
	for _, statement := range stored.Statements {
		out.Statements = append(out.Statements, types.Statement(statement))
	}
	return out
}

func kbError(msg string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(err)
}

var _ ports.KnowledgeBasePort = (*BadgerKnowledgeBase)(nil)
