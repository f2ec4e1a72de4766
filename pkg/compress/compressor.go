/*
Package compress produces the compressed counterparts of published word lists and reads
them back.

The pipeline treats compression as a black box behind Compressor: given a plain list
"e5.txt" it returns the path of the compressed artifact, "e5.dawg". Three modes exist:

	trie  in-process encoder (front-coded msgpack, zstd or lz4), the default
	exec  an external tool, e.g. a DAWG builder, run once per list
	none  no compressed artifacts; every list is published as plain text

An exec tool exiting non-zero aborts the run with ErrCompressorFailed.
*/
package compress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrCompressorFailed wraps every failure of the compression step.
var ErrCompressorFailed = errors.New("compressor failed")

// Compressor builds the compressed artifact for one plain list. An empty path with a nil
// error means no artifact was produced.
type Compressor interface {
	Compress(ctx context.Context, listPath string) (artifactPath string, err error)
}

// Mode selects a Compressor implementation.
type Mode string

const (
	ModeTrie Mode = "trie"
	ModeExec Mode = "exec"
	ModeNone Mode = "none"
)

// Options configures New.
type Options struct {
	Mode    Mode
	Codec   string
	Command string
	Args    []string
}

// New returns the compressor selected by opts.
func New(opts Options) (Compressor, error) {
	switch opts.Mode {
	case ModeTrie, "":
		codec, err := ParseCodec(opts.Codec)
		if err != nil {
			return nil, err
		}
		return &TrieCompressor{Codec: codec}, nil
	case ModeExec:
		if opts.Command == "" {
			return nil, errors.New("exec compression needs a command")
		}
		return &ExecCompressor{Command: opts.Command, Args: opts.Args}, nil
	case ModeNone:
		return NoneCompressor{}, nil
	}
	return nil, fmt.Errorf("unknown compression mode %q (want trie, exec or none)", opts.Mode)
}

// TrieCompressor encodes lists in-process.
type TrieCompressor struct {
	Codec Codec
}

func (c *TrieCompressor) Compress(ctx context.Context, listPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(listPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompressorFailed, err)
	}
	var words []string
	if len(data) > 0 {
		words = strings.Split(string(data), "\n")
	}

	encoded, err := Encode(words, c.Codec)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCompressorFailed, listPath, err)
	}
	out := ArtifactPath(listPath)
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompressorFailed, err)
	}
	log.Debugf("Compressed %s (%d words, %d bytes)", out, len(words), len(encoded))
	return out, nil
}

// ExecCompressor runs an external tool. The placeholders {in} and {out} in Args are replaced
// by the list path and the artifact path.
type ExecCompressor struct {
	Command string
	Args    []string
}

func (c *ExecCompressor) Compress(ctx context.Context, listPath string) (string, error) {
	out := ArtifactPath(listPath)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		a = strings.ReplaceAll(a, "{in}", listPath)
		args[i] = strings.ReplaceAll(a, "{out}", out)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s %s: %v: %s",
			ErrCompressorFailed, c.Command, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("%w: %s produced no %s", ErrCompressorFailed, c.Command, out)
	}
	return out, nil
}

// NoneCompressor never produces an artifact.
type NoneCompressor struct{}

func (NoneCompressor) Compress(context.Context, string) (string, error) { return "", nil }
