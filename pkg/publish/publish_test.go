package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	keys  []string
	types map[string]string
	fail  string
}

func (r *recordingUploader) Upload(_ context.Context, key, localPath, contentType string) error {
	if key == r.fail {
		return errors.New("access denied")
	}
	if _, err := os.Stat(localPath); err != nil {
		return err
	}
	r.keys = append(r.keys, key)
	if r.types == nil {
		r.types = make(map[string]string)
	}
	r.types[key] = contentType
	return nil
}

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{
		"manifest.json",
		"words/spellcheck/e3.txt",
		"words/spellcheck/e3.dawg",
		"words/spellcheck/LICENSE",
		"anagram/spellcheck/3.json",
		".manifest-123.json",
	} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	return root
}

func TestTreeUploadsManifestLast(t *testing.T) {
	root := buildTree(t)
	up := &recordingUploader{}

	n, err := Tree(context.Background(), up, root, "wordlists/v2", "manifest.json", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{
		"wordlists/v2/anagram/spellcheck/3.json",
		"wordlists/v2/words/spellcheck/LICENSE",
		"wordlists/v2/words/spellcheck/e3.dawg",
		"wordlists/v2/words/spellcheck/e3.txt",
		"wordlists/v2/manifest.json",
	}, up.keys)
	assert.Equal(t, "application/json", up.types["wordlists/v2/manifest.json"])
	assert.Equal(t, "application/octet-stream", up.types["wordlists/v2/words/spellcheck/e3.dawg"])
	assert.Equal(t, "text/plain; charset=utf-8", up.types["wordlists/v2/words/spellcheck/LICENSE"])
}

func TestTreeStopsOnFailure(t *testing.T) {
	root := buildTree(t)
	up := &recordingUploader{fail: "words/spellcheck/e3.dawg"}

	n, err := Tree(context.Background(), up, root, "", "manifest.json", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPublishFailed)
	assert.Equal(t, 2, n)
	assert.NotContains(t, up.keys, "manifest.json", "manifest must not be published after a failure")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a/b/c.txt", Key("a", filepath.Join("b", "c.txt")))
	assert.Equal(t, "c.txt", Key("", "c.txt"))
}

func TestNewValidates(t *testing.T) {
	_, err := New(context.Background(), Options{Backend: "minio"})
	assert.Error(t, err, "bucket is required")

	_, err = New(context.Background(), Options{Backend: "ftp", Bucket: "b"})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Backend: "minio", Bucket: "b"})
	assert.Error(t, err, "endpoint is required")

	u, err := New(context.Background(), Options{Backend: "minio", Bucket: "b", Endpoint: "localhost:9000"})
	require.NoError(t, err)
	assert.IsType(t, &MinioUploader{}, u)
}
