package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	workdir := t.TempDir()
	store, err := NewLocalStore(workdir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "Photo.JPG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(ref, ".jpg"))

	data, err := os.ReadFile(filepath.Join(workdir, "media", ref))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))
}

func TestURLFor(t *testing.T) {
	require.Equal(t, "/media/abc.jpg", URLFor("/media/", "abc.jpg"))
	require.Equal(t, "https://cdn.example.com/abc.jpg", URLFor("https://cdn.example.com", "abc.jpg"))
	require.Equal(t, "https://elsewhere.com/x.png", URLFor("/media", "https://elsewhere.com/x.png"))
	require.Equal(t, "", URLFor("/media", ""))
}
