/*
Package publish uploads a finished output tree to object storage.

Two backends are supported: any S3-compatible store through the MinIO client, and AWS S3
through the AWS SDK. Files are uploaded in path order with the manifest last, so a consumer
that sees a new manifest can fetch every list it names.
*/
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrPublishFailed wraps upload failures.
var ErrPublishFailed = errors.New("publish failed")

// Uploader stores one local file under key.
type Uploader interface {
	Upload(ctx context.Context, key, localPath, contentType string) error
}

// Options configures New.
type Options struct {
	Backend   string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New returns the uploader for opts.Backend.
func New(ctx context.Context, opts Options) (Uploader, error) {
	if opts.Bucket == "" {
		return nil, errors.New("publish needs a bucket")
	}
	switch opts.Backend {
	case "minio":
		return NewMinio(opts)
	case "s3", "":
		return NewS3(ctx, opts)
	}
	return nil, fmt.Errorf("unknown publish backend %q (want s3 or minio)", opts.Backend)
}

// ContentType returns the MIME type used for an artifact.
func ContentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt", "":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Key maps a path relative to the output root to an object key below prefix.
func Key(prefix, rel string) string {
	return path.Join(prefix, filepath.ToSlash(rel))
}

// Files lists the regular files below root, relative and slash separated, sorted with
// manifest last.
func Files(root, manifest string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		mi, mj := files[i] == manifest, files[j] == manifest
		if mi != mj {
			return mj
		}
		return files[i] < files[j]
	})
	return files, nil
}

// Tree uploads every file below root and returns the number of uploaded objects.
func Tree(ctx context.Context, u Uploader, root, prefix, manifest string, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.Default()
	}
	files, err := Files(root, manifest)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to list %s: %v", ErrPublishFailed, root, err)
	}
	for i, rel := range files {
		key := Key(prefix, rel)
		if err := u.Upload(ctx, key, filepath.Join(root, filepath.FromSlash(rel)), ContentType(rel)); err != nil {
			return i, fmt.Errorf("%w: %s: %v", ErrPublishFailed, key, err)
		}
		logger.Debug("Uploaded", "key", key)
	}
	return len(files), nil
}
