package compress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Format is the on-disk representation of a published word list.
type Format string

const (
	// FormatNone marks a length or weight without an artifact. It marshals to JSON null.
	FormatNone Format = ""
	FormatText Format = "txt"
	FormatDawg Format = "dawg"
)

// Ext returns the file extension of f including the dot.
func (f Format) Ext() string {
	if f == FormatNone {
		return ""
	}
	return "." + string(f)
}

func (f Format) MarshalJSON() ([]byte, error) {
	if f == FormatNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

func (f *Format) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = FormatNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Format(s) {
	case FormatText, FormatDawg:
		*f = Format(s)
		return nil
	}
	return fmt.Errorf("unknown list format %q", s)
}

// ArtifactPath returns the compressed counterpart of a plain list: same base name, .dawg extension.
func ArtifactPath(listPath string) string {
	return strings.TrimSuffix(listPath, filepath.Ext(listPath)) + FormatDawg.Ext()
}

// ValidateFile checks that path looks like a file of format f.
func ValidateFile(path string, f Format) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != f.Ext() {
		return fmt.Errorf("file %s has invalid extension %s for format %s", path, ext, f)
	}

	switch f {
	case FormatDawg:
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", path, err)
		}
		defer file.Close()
		h, err := readHeader(file)
		if err != nil {
			return fmt.Errorf("invalid dawg file %s: %w", path, err)
		}
		log.Debugf("Dawg file %s validated: %d words, codec %s", path, h.Count, h.Codec)
	case FormatText:
		if info.Size() == 0 {
			return fmt.Errorf("text list %s is empty", path)
		}
	default:
		return fmt.Errorf("unknown format: %q", f)
	}
	return nil
}

// DetectFormat infers the format of path from its extension and validates it.
func DetectFormat(path string) (Format, error) {
	for _, f := range []Format{FormatDawg, FormatText} {
		if strings.EqualFold(filepath.Ext(path), f.Ext()) {
			if err := ValidateFile(path, f); err != nil {
				return FormatNone, err
			}
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("unable to detect format for file %s", path)
}
