package timetable

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownGroup is returned for a group name the registry does not hold.
var ErrUnknownGroup = errors.New("unknown group")

// Registry maps group names to their weekly tables. All tables share one grid.
type Registry struct {
	grid   *Grid
	tables map[string]*WeeklyTable
}

// NewRegistry indexes tables by name. Every table must use grid, and names
// must be unique.
func NewRegistry(grid *Grid, tables ...*WeeklyTable) (*Registry, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: registry without grid", ErrInvalidGrid)
	}
	r := &Registry{grid: grid, tables: make(map[string]*WeeklyTable, len(tables))}
	for _, t := range tables {
		if t.grid != grid {
			return nil, fmt.Errorf("%w: table %q built on a different grid", ErrInvalidTableShape, t.name)
		}
		if _, dup := r.tables[t.name]; dup {
			return nil, fmt.Errorf("duplicate group %q", t.name)
		}
		r.tables[t.name] = t
	}
	return r, nil
}

// Grid is the grid shared by all tables.
func (r *Registry) Grid() *Grid { return r.grid }

// Table looks a group up by its exact name. No default is substituted.
func (r *Registry) Table(name string) (*WeeklyTable, error) {
	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return t, nil
}

// Has reports whether name is a known group.
func (r *Registry) Has(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// Names returns the group names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for n := range r.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
