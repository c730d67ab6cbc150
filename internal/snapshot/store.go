package snapshot

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

// DefaultKey é a chave de blob usada por autoridade e réplica.
const DefaultKey = "appData"

// Snapshot inicial embutido no binário; adotado no cold start quando o
// blob store ainda está vazio.
//
//go:embed seed.json
var seedJSON []byte

// Store serializa models.Snapshot sobre um Blob.
type Store struct {
	blob Blob
	key  string
}

func NewStore(blob Blob, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{blob: blob, key: key}
}

// Load lê o snapshot persistido; ok=false quando ainda não existe.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, bool, error) {
	b, ok, err := s.blob.Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("snapshot get: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false, fmt.Errorf("snapshot decode: %w", err)
	}
	return &snap, true, nil
}

// Save persiste o snapshot inteiro.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := s.blob.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("snapshot set: %w", err)
	}
	return nil
}

// LoadOrSeed devolve o snapshot persistido ou, se não existir, adota o seed
// embutido e o grava imediatamente como primeira escrita do store.
func (s *Store) LoadOrSeed(ctx context.Context) (*models.Snapshot, error) {
	snap, ok, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return snap, nil
	}

	seed, err := Seed()
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Seed devolve uma cópia do snapshot inicial embutido.
func Seed() (*models.Snapshot, error) {
	var seed models.Snapshot
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		return nil, fmt.Errorf("seed decode: %w", err)
	}
	return &seed, nil
}
