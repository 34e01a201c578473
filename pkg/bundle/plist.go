// Package bundle handles app bundle metadata: Info.plist overlay merging
// and vendor framework binary inspection.
package bundle

import (
	"errors"
	"fmt"
	"os"

	"howett.net/plist"
)

// ErrDestinationLoad marks an unreadable merge destination. Unreadable
// sources are optional overlays and are skipped; the destination is the
// required base document.
var ErrDestinationLoad = errors.New("destination plist unreadable")

// Source is one overlay for MergePlists: either a file path or an
// in-memory document.
type Source struct {
	path string
	doc  map[string]interface{}
}

// SourceFile overlays the plist file at path.
func SourceFile(path string) Source { return Source{path: path} }

// SourceDoc overlays an in-memory dictionary.
func SourceDoc(doc map[string]interface{}) Source { return Source{doc: doc} }

func (s Source) load() (map[string]interface{}, error) {
	if s.doc != nil {
		return s.doc, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var dict map[string]interface{}
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		return nil, err
	}
	return dict, nil
}

// MergePlists folds each readable source's top-level keys into the plist
// at dest, in order, so later sources win on colliding keys. Values are
// replaced whole; nested dictionaries are not merged recursively. The
// destination is loaded lazily on the first readable source and rewritten
// as XML only when at least one source merged, so a run where every
// source is skipped leaves the file untouched.
func MergePlists(sources []Source, dest string) error {
	var merged map[string]interface{}
	for _, src := range sources {
		dict, err := src.load()
		if err != nil {
			continue
		}
		if merged == nil {
			data, err := os.ReadFile(dest)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", dest, errors.Join(ErrDestinationLoad, err))
			}
			if _, err := plist.Unmarshal(data, &merged); err != nil {
				return fmt.Errorf("failed to load %s: %w", dest, errors.Join(ErrDestinationLoad, err))
			}
		}
		for k, v := range dict {
			merged[k] = v
		}
	}
	if merged == nil {
		return nil
	}

	out, err := plist.MarshalIndent(merged, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal merged plist: %w", err)
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
