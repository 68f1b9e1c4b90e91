package cycleprof

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry is the closed, immutable mapping between region names and
// their identifiers. Identifier 0 is reserved for RootRegion; real regions
// are numbered from 1.
type Registry struct {
	byID   []string // indexed by Region; "" marks a gap
	byName map[string]Region
	order  []RegionInfo
}

// NewRegistry assigns identifiers 1..N to names in the order given.
func NewRegistry(names ...string) (*Registry, error) {
	infos := make([]RegionInfo, len(names))
	for i, name := range names {
		infos[i] = RegionInfo{ID: Region(i + 1), Name: name}
	}

	return newRegistry(infos)
}

// MustNewRegistry is like NewRegistry but panics on error. It is meant for
// package-level region tables.
func MustNewRegistry(names ...string) *Registry {
	r, err := NewRegistry(names...)
	if err != nil {
		panic(err)
	}

	return r
}

// NewRegistryFromMap builds a registry from explicit identifiers.
func NewRegistryFromMap(m map[string]Region) (*Registry, error) {
	infos := make([]RegionInfo, 0, len(m))
	for name, id := range m {
		infos = append(infos, RegionInfo{ID: id, Name: name})
	}

	return newRegistry(infos)
}

type registryFile struct {
	Regions []struct {
		Name string `yaml:"name"`
		ID   *int   `yaml:"id"`
	} `yaml:"regions"`
}

// LoadRegistry reads a YAML region table:
//
//	regions:
//	  - name: parse
//	    id: 1
//	  - name: eval      # id 2
//
// An entry without an id takes the previous entry's id plus one.
func LoadRegistry(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file registryFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode region registry: %w", err)
	}

	infos := make([]RegionInfo, 0, len(file.Regions))
	next := 1

	for _, entry := range file.Regions {
		id := next
		if entry.ID != nil {
			id = *entry.ID
		}

		if id <= 0 || id > MaxRegions {
			return nil, fmt.Errorf("%w: region %q has id %d outside [1, %d]",
				ErrInvalidRegistry, entry.Name, id, MaxRegions)
		}

		infos = append(infos, RegionInfo{ID: Region(id), Name: entry.Name})
		next = id + 1
	}

	return newRegistry(infos)
}

func newRegistry(infos []RegionInfo) (*Registry, error) {
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	maxID := RootRegion
	byName := make(map[string]Region, len(infos))

	for i, info := range infos {
		switch {
		case info.Name == "":
			return nil, fmt.Errorf("%w: empty name for id %d", ErrInvalidRegistry, info.ID)
		case info.ID == RootRegion || info.ID > MaxRegions:
			return nil, fmt.Errorf("%w: region %q has id %d outside [1, %d]",
				ErrInvalidRegistry, info.Name, info.ID, MaxRegions)
		case i > 0 && infos[i-1].ID == info.ID:
			return nil, fmt.Errorf("%w: id %d used by %q and %q",
				ErrInvalidRegistry, info.ID, infos[i-1].Name, info.Name)
		}

		if prev, dup := byName[info.Name]; dup {
			return nil, fmt.Errorf("%w: name %q used by ids %d and %d",
				ErrInvalidRegistry, info.Name, prev, info.ID)
		}

		byName[info.Name] = info.ID
		maxID = info.ID
	}

	byID := make([]string, int(maxID)+1)
	for _, info := range infos {
		byID[info.ID] = info.Name
	}

	return &Registry{byID: byID, byName: byName, order: infos}, nil
}

// Region returns the identifier bound to name.
func (r *Registry) Region(name string) (Region, error) {
	id, ok := r.byName[name]
	if !ok {
		return RootRegion, fmt.Errorf("%w: %q", ErrNoRegion, name)
	}

	return id, nil
}

// Name returns the name bound to id. The root sentinel and unmapped
// identifiers fail with ErrNoRegion.
func (r *Registry) Name(id Region) (string, error) {
	if int(id) >= len(r.byID) || r.byID[id] == "" {
		return "", fmt.Errorf("%w: id %d", ErrNoRegion, id)
	}

	return r.byID[id], nil
}

// Len returns the number of registered regions.
func (r *Registry) Len() int {
	return len(r.order)
}

// Capacity returns the smallest slot table size that covers every
// registered identifier, root slot included.
func (r *Registry) Capacity() int {
	return len(r.byID)
}

// All returns the registered regions in ascending identifier order.
func (r *Registry) All() []RegionInfo {
	out := make([]RegionInfo, len(r.order))
	copy(out, r.order)

	return out
}

// names returns a slot-indexed name table of the given capacity.
func (r *Registry) names(capacity int) []string {
	out := make([]string, capacity)
	copy(out, r.byID)

	return out
}
