package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/tashbetz/internal/utils"
	"github.com/bastiangx/tashbetz/pkg/compress"
	"github.com/bastiangx/tashbetz/pkg/translit"
)

// ListKind selects a section of list_source.
type ListKind string

const (
	KindDictionary ListKind = "dictionary"
	KindAnagram    ListKind = "anagram"
	KindRelated    ListKind = "related"
)

// Formats holds one entry per length or weight; the index is the length. Gaps are FormatNone
// and marshal to null.
type Formats []compress.Format

// ListSource records, per kind and category, which artifact to fetch.
type ListSource struct {
	Dictionary map[string]Formats `json:"dictionary"`
	Anagram    map[string]Formats `json:"anagram"`
	Related    map[string]Formats `json:"related"`
}

// Manifest is the published description of an output tree.
type Manifest struct {
	TranslateMapping map[string]string `json:"translate_mapping"`
	FinalFormMapping map[string]string `json:"final_form_mapping"`
	ListSource       ListSource        `json:"list_source"`
	BuildID          string            `json:"build_id,omitempty"`
}

// NewManifest returns an empty manifest carrying both tables of table.
func NewManifest(table *translit.Table, buildID string) *Manifest {
	return &Manifest{
		TranslateMapping: table.Mapping(),
		FinalFormMapping: table.FinalForms(),
		ListSource: ListSource{
			Dictionary: make(map[string]Formats),
			Anagram:    make(map[string]Formats),
			Related:    make(map[string]Formats),
		},
		BuildID: buildID,
	}
}

func (m *Manifest) section(kind ListKind) map[string]Formats {
	switch kind {
	case KindDictionary:
		return m.ListSource.Dictionary
	case KindAnagram:
		return m.ListSource.Anagram
	case KindRelated:
		return m.ListSource.Related
	}
	return nil
}

// Declare lists category under kind even if it ends up with no artifacts.
func (m *Manifest) Declare(kind ListKind, category string) {
	if sec := m.section(kind); sec != nil && sec[category] == nil {
		sec[category] = Formats{}
	}
}

// Record sets the format of (kind, category, index), growing the array with nulls as needed.
func (m *Manifest) Record(kind ListKind, category string, index int, f compress.Format) {
	sec := m.section(kind)
	if sec == nil {
		return
	}
	formats := sec[category]
	for len(formats) <= index {
		formats = append(formats, compress.FormatNone)
	}
	formats[index] = f
	sec[category] = formats
}

// Formats returns the recorded array of (kind, category).
func (m *Manifest) Formats(kind ListKind, category string) Formats {
	return m.section(kind)[category]
}

// ChooseFormat compares a plain list with its compressed counterpart. The plain list wins
// ties and is chosen whenever there is no compressed file.
func ChooseFormat(plainPath, compressedPath string) (compress.Format, error) {
	plain, err := utils.FileSize(plainPath)
	if err != nil {
		return compress.FormatNone, fmt.Errorf("failed to stat list %s: %w", plainPath, err)
	}
	if compressedPath == "" {
		return compress.FormatText, nil
	}
	packed, err := utils.FileSize(compressedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return compress.FormatText, nil
		}
		return compress.FormatNone, fmt.Errorf("failed to stat artifact %s: %w", compressedPath, err)
	}
	if plain <= packed {
		return compress.FormatText, nil
	}
	return compress.FormatDawg, nil
}

// Save writes the manifest as JSON, replacing path atomically.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move manifest into place: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &m, nil
}
