/*
Package dataset provides the songs and similarity edges a catalog is seeded with.

The built-in seed mirrors the small demo catalog:

	[[songs]]
	title = "Shape of You"
	popularity = 95

	[[edges]]
	a = "Shape of You"
	b = "Perfect"

Datasets can also be read from and written to .toml or .msgpack files.
*/
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoSongs is returned when a dataset has nothing to seed.
var ErrNoSongs = errors.New("dataset has no songs")

// Song is one seeded title with its popularity.
type Song struct {
	Title      string `toml:"title" msgpack:"t"`
	Popularity int    `toml:"popularity" msgpack:"p"`
}

// Edge is an undirected similarity relation.
type Edge struct {
	A string `toml:"a" msgpack:"a"`
	B string `toml:"b" msgpack:"b"`
}

// Dataset is everything the catalog needs at startup.
type Dataset struct {
	Songs []Song `toml:"songs" msgpack:"songs"`
	Edges []Edge `toml:"edges" msgpack:"edges"`
}

// Default returns the built-in seed.
func Default() *Dataset {
	return &Dataset{
		Songs: []Song{
			{Title: "Shape of You", Popularity: 95},
			{Title: "Blinding Lights", Popularity: 90},
			{Title: "Despacito", Popularity: 85},
			{Title: "Believer", Popularity: 80},
			{Title: "Faded", Popularity: 75},
			{Title: "Closer", Popularity: 70},
			{Title: "Havana", Popularity: 65},
		},
		Edges: []Edge{
			{A: "Shape of You", B: "Perfect"},
			{A: "Blinding Lights", B: "Save Your Tears"},
			{A: "Despacito", B: "Bailando"},
			{A: "Believer", B: "Radioactive"},
			{A: "Faded", B: "Alone"},
		},
	}
}

// Validate rejects datasets without songs. Empty titles are allowed but logged.
func (ds *Dataset) Validate() error {
	if ds == nil || len(ds.Songs) == 0 {
		return ErrNoSongs
	}
	for i, s := range ds.Songs {
		if s.Title == "" {
			log.Warnf("Song #%d has an empty title", i+1)
		}
	}
	for i, e := range ds.Edges {
		if e.A == "" || e.B == "" {
			log.Warnf("Edge #%d has an empty endpoint (%q, %q)", i+1, e.A, e.B)
		}
	}
	return nil
}

// Load reads a dataset file, choosing the decoder from its extension.
func Load(path string) (*Dataset, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	ds, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}

	log.Debugf("Loaded dataset %s: %d songs, %d edges", path, len(ds.Songs), len(ds.Edges))
	return ds, nil
}

// Decode parses raw dataset bytes in the given format.
func Decode(data []byte, format FileFormat) (*Dataset, error) {
	ds := &Dataset{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), ds); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, ds); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	return ds, nil
}

// Encode serializes ds in the given format.
func Encode(ds *Dataset, format FileFormat) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(ds); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		return msgpack.Marshal(ds)
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// Save writes ds to path in the format implied by its extension.
func Save(ds *Dataset, path string) error {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return fmt.Errorf("unable to detect format for file %s", path)
	}

	data, err := Encode(ds, format)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}
