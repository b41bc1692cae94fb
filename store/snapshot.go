package store

import (
	"slices"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/render"
	"github.com/0xalexb/confedit/schema"
)

// Snapshot is the complete state of one document at one point in time.
// Snapshots are never modified; every accepted edit produces a new one that shares
// unchanged subtrees with its predecessor.
type Snapshot struct {
	kind    schema.Kind
	root    document.Node
	base    document.Node
	seed    []byte
	version uint64
	journal []document.Edit
}

// NewSnapshot decodes and binds seed as a document of the given kind.
func NewSnapshot(kind schema.Kind, seed []byte) (*Snapshot, error) {
	root, err := schema.Load(kind, seed)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		kind:    kind,
		root:    root,
		base:    root,
		seed:    slices.Clone(seed),
		version: 0,
		journal: nil,
	}, nil
}

// Kind returns the document kind.
func (s *Snapshot) Kind() schema.Kind { return s.kind }

// Root returns the document tree.
func (s *Snapshot) Root() document.Node { return s.root }

// Version counts accepted edits since the session started.
func (s *Snapshot) Version() uint64 { return s.version }

// Seed returns a copy of the bytes the session was loaded from.
func (s *Snapshot) Seed() []byte { return slices.Clone(s.seed) }

// Journal returns the accepted edits since the seed or the last reset.
func (s *Snapshot) Journal() []document.Edit { return slices.Clone(s.journal) }

// Dirty reports whether any edit was accepted since the seed or the last reset.
func (s *Snapshot) Dirty() bool { return len(s.journal) > 0 }

// Value returns the leaf value at path.
func (s *Snapshot) Value(path document.Path) (document.Value, error) {
	return document.GetAtPath(s.root, path)
}

// Render serializes the snapshot in the export format.
func (s *Snapshot) Render() []byte { return render.Render(s.root) }

// Overlay patches the journal into the seed bytes, keeping the seed's formatting.
func (s *Snapshot) Overlay() ([]byte, error) { return render.Overlay(s.seed, s.journal) }

// Fields lists the editable leaves.
func (s *Snapshot) Fields() []schema.EditableField { return schema.Fields(s.root) }

// Screens returns the typed screen view of a feature snapshot.
func (s *Snapshot) Screens() ([]schema.FeatureScreen, error) {
	if err := s.expect(schema.Features); err != nil {
		return nil, err
	}

	return schema.Screens(s.root)
}

// GlobalConfig returns the global options of a feature snapshot.
func (s *Snapshot) GlobalConfig() ([]schema.ConfigOption, error) {
	if err := s.expect(schema.Features); err != nil {
		return nil, err
	}

	return schema.GlobalConfig(s.root)
}

// Themes returns the typed theme view of a theme snapshot.
func (s *Snapshot) Themes() ([]schema.ThemeEntry, error) {
	if err := s.expect(schema.Themes); err != nil {
		return nil, err
	}

	return schema.ThemeEntries(s.root)
}

// Passthrough lists the top-level fields outside the theme schema.
func (s *Snapshot) Passthrough() []string {
	if s.kind != schema.Themes {
		return nil
	}

	return schema.Passthrough(s.root)
}

func (s *Snapshot) expect(kind schema.Kind) error {
	if s.kind != kind {
		return wrongKind(kind, s.kind)
	}

	return nil
}

// commit returns the successor snapshot with v stored at path.
func (s *Snapshot) commit(path document.Path, v document.Value) (*Snapshot, error) {
	root, err := document.SetAtPath(s.root, path, v)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		kind:    s.kind,
		root:    root,
		base:    s.base,
		seed:    s.seed,
		version: s.version + 1,
		journal: append(slices.Clip(s.journal), document.Edit{Path: path, Value: v}),
	}, nil
}

func (s *Snapshot) reset() *Snapshot {
	return &Snapshot{
		kind:    s.kind,
		root:    s.base,
		base:    s.base,
		seed:    s.seed,
		version: s.version + 1,
		journal: nil,
	}
}
