package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
	"github.com/vmihailenco/msgpack/v5"
)

// A .dawg file is a fixed header followed by the codec payload:
//
//	magic    [4]byte "TBZD"
//	version  uint8
//	codec    uint8
//	count    uint32  number of words
//	rawSize  uint32  payload size before the codec
//
// The raw payload is a msgpack array of front-coded entries over the sorted word list.
var magic = [4]byte{'T', 'B', 'Z', 'D'}

const (
	formatVersion = 1
	headerSize    = 14
	maxWords      = 10_000_000
	maxRawSize    = 512 << 20
)

// ErrInvalidDawg is returned when a file is not a readable dawg artifact.
var ErrInvalidDawg = errors.New("invalid dawg file")

type header struct {
	Version uint8
	Codec   Codec
	Count   uint32
	RawSize uint32
}

func (h header) marshal() []byte {
	b := make([]byte, headerSize)
	copy(b, magic[:])
	b[4] = h.Version
	b[5] = byte(h.Codec)
	binary.LittleEndian.PutUint32(b[6:], h.Count)
	binary.LittleEndian.PutUint32(b[10:], h.RawSize)
	return b
}

func readHeader(r io.Reader) (header, error) {
	b := make([]byte, headerSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return header{}, fmt.Errorf("%w: short header: %v", ErrInvalidDawg, err)
	}
	if !bytes.Equal(b[:4], magic[:]) {
		return header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidDawg, b[:4])
	}
	h := header{
		Version: b[4],
		Codec:   Codec(b[5]),
		Count:   binary.LittleEndian.Uint32(b[6:]),
		RawSize: binary.LittleEndian.Uint32(b[10:]),
	}
	if h.Version != formatVersion {
		return header{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidDawg, h.Version)
	}
	if h.Codec > CodecZstd {
		return header{}, fmt.Errorf("%w: unknown codec %d", ErrInvalidDawg, h.Codec)
	}
	if h.Count > maxWords {
		return header{}, fmt.Errorf("%w: suspicious word count %d", ErrInvalidDawg, h.Count)
	}
	if h.RawSize > maxRawSize {
		return header{}, fmt.Errorf("%w: suspicious payload size %d", ErrInvalidDawg, h.RawSize)
	}
	return h, nil
}

type entry struct {
	_msgpack struct{} `msgpack:",as_array"`
	Shared   int
	Suffix   string
}

// frontCode encodes sorted words as (shared prefix bytes, suffix) pairs. The shared prefix
// always ends on a rune boundary.
func frontCode(words []string) []entry {
	out := make([]entry, len(words))
	prev := ""
	for i, w := range words {
		n := 0
		for n < len(prev) && n < len(w) && prev[n] == w[n] {
			n++
		}
		for n > 0 && n < len(w) && !utf8.RuneStart(w[n]) {
			n--
		}
		out[i] = entry{Shared: n, Suffix: w[n:]}
		prev = w
	}
	return out
}

func frontDecode(entries []entry) ([]string, error) {
	out := make([]string, len(entries))
	prev := ""
	for i, e := range entries {
		if e.Shared < 0 || e.Shared > len(prev) {
			return nil, fmt.Errorf("%w: entry %d shares %d bytes of %q", ErrInvalidDawg, i, e.Shared, prev)
		}
		out[i] = prev[:e.Shared] + e.Suffix
		prev = out[i]
	}
	return out, nil
}

// Encode serializes words into the dawg format. Duplicates are dropped and the words are
// stored in sorted order.
func Encode(words []string, codec Codec) ([]byte, error) {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	raw, err := msgpack.Marshal(frontCode(sorted))
	if err != nil {
		return nil, fmt.Errorf("failed to encode entries: %w", err)
	}
	if len(raw) > maxRawSize {
		return nil, fmt.Errorf("payload of %d bytes exceeds the %d byte limit", len(raw), maxRawSize)
	}
	payload, used, err := encodeBlock(codec, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload with %s: %w", codec, err)
	}

	h := header{Version: formatVersion, Codec: used, Count: uint32(len(sorted)), RawSize: uint32(len(raw))}
	return append(h.marshal(), payload...), nil
}

// Decode parses a dawg artifact back into its sorted word list.
func Decode(data []byte) ([]string, error) {
	h, err := readHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	raw, err := decodeBlock(h.Codec, data[headerSize:], h.RawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDawg, err)
	}
	var entries []entry
	if err := msgpack.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDawg, err)
	}
	if len(entries) != int(h.Count) {
		return nil, fmt.Errorf("%w: header says %d words, payload has %d", ErrInvalidDawg, h.Count, len(entries))
	}
	return frontDecode(entries)
}

// Dawg is a loaded artifact, indexed in a patricia trie for lookups.
type Dawg struct {
	trie  *patricia.Trie
	count int
}

// Open reads and indexes the dawg file at path.
func Open(path string) (*Dawg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	words, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return NewDawg(words), nil
}

// NewDawg indexes words in memory.
func NewDawg(words []string) *Dawg {
	d := &Dawg{trie: patricia.NewTrie()}
	for _, w := range words {
		if d.trie.Insert(patricia.Prefix(w), true) {
			d.count++
		}
	}
	return d
}

// Len returns the number of words.
func (d *Dawg) Len() int { return d.count }

// Contains reports whether word is in the list.
func (d *Dawg) Contains(word string) bool {
	return d.trie.Match(patricia.Prefix(word))
}

// HasPrefix reports whether any word starts with prefix.
func (d *Dawg) HasPrefix(prefix string) bool {
	return d.trie.MatchSubtree(patricia.Prefix(prefix))
}

// Complete returns up to limit words starting with prefix, sorted. A limit <= 0 returns all.
func (d *Dawg) Complete(prefix string, limit int) []string {
	var out []string
	_ = d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	slices.Sort(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Words returns every word, sorted.
func (d *Dawg) Words() []string {
	return d.Complete("", 0)
}
