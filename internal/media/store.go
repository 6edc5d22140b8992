package media

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/openshelf/openshelf/pkg/common"
)

// Store persists uploaded blobs and hands back an opaque reference.
// The rest of the system only stores and relays that reference.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalStore keeps uploads under a workdir subdirectory.
type LocalStore struct {
	dir string
}

func NewLocalStore(workdir string) (*LocalStore, error) {
	dir := filepath.Join(workdir, "media")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ref := common.NextFileName(strings.ToLower(filepath.Ext(filename)))
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return ref, nil
}

// URLFor formats a stored reference for display using the configured
// media base URL. References that are already absolute pass through.
func URLFor(baseURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(baseURL, "/") + "/" + path.Clean(ref)
}
