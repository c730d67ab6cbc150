package snapshot

import (
	"context"
	"os"
	"path/filepath"
)

// Blob é o contrato mínimo de persistência: um armazenamento chave-valor
// opaco com get/set. A autoridade e a réplica do cliente usam backends
// diferentes por trás da mesma interface.
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// FileBlob guarda cada chave como um arquivo JSON dentro de um diretório.
// É o backend da réplica local do cliente.
type FileBlob struct {
	Dir string
}

func NewFileBlob(dir string) *FileBlob { return &FileBlob{Dir: dir} }

func (f *FileBlob) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileBlob) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (f *FileBlob) Set(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), data, 0o644)
}
