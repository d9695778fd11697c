package timetable

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"
)

//go:embed default.yaml
var defaultDocument []byte

var validate = validator.New()

type document struct {
	Timezone  string              `yaml:"timezone"`
	Operating windowDoc           `yaml:"operating" validate:"required"`
	Slots     []intervalDoc       `yaml:"slots" validate:"required,min=1,dive"`
	Breaks    []breakDoc          `yaml:"breaks" validate:"dive"`
	Faculty   map[string]string   `yaml:"faculty"`
	Groups    map[string]groupDoc `yaml:"groups" validate:"required,min=1,dive"`
}

type windowDoc struct {
	Open  string `yaml:"open" validate:"required"`
	Close string `yaml:"close" validate:"required"`
}

type intervalDoc struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

type breakDoc struct {
	Name  string `yaml:"name" validate:"required"`
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

type groupDoc struct {
	Closed []string               `yaml:"closed"`
	Days   map[string][]*entryDoc `yaml:"days" validate:"required"`
}

type entryDoc struct {
	Label    string `yaml:"label" validate:"required"`
	Location string `yaml:"location" validate:"required"`
	Owner    string `yaml:"owner"`
}

// DefaultRegistry loads the bundled timetable.
func DefaultRegistry(loc *time.Location) (*Registry, error) {
	return LoadRegistry(bytes.NewReader(defaultDocument), loc)
}

// LoadRegistryFile loads a timetable document from disk.
func LoadRegistryFile(path string, loc *time.Location) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}
	defer f.Close()
	return LoadRegistry(f, loc)
}

// LoadRegistry decodes a YAML timetable document. When loc is nil the document's
// timezone is used; otherwise loc wins and the document's zone is ignored.
func LoadRegistry(r io.Reader, loc *time.Location) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timetable: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validate timetable: %w", err)
	}

	if loc == nil {
		if doc.Timezone == "" {
			return nil, fmt.Errorf("%w: no timezone configured", ErrInvalidGrid)
		}
		l, err := time.LoadLocation(doc.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", doc.Timezone, err)
		}
		loc = l
	}

	grid, err := doc.grid(loc)
	if err != nil {
		return nil, err
	}

	tables := make([]*WeeklyTable, 0, len(doc.Groups))
	for name, g := range doc.Groups {
		t, err := g.table(name, grid, doc.Faculty)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewRegistry(grid, tables...)
}

func (d document) grid(loc *time.Location) (*Grid, error) {
	open, err := parseInterval(d.Operating.Open, d.Operating.Close)
	if err != nil {
		return nil, fmt.Errorf("operating window: %w", err)
	}
	slots := make([]SlotInterval, 0, len(d.Slots))
	for i, s := range d.Slots {
		iv, err := parseInterval(s.Start, s.End)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		slots = append(slots, iv)
	}
	breaks := make([]Break, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		iv, err := parseInterval(b.Start, b.End)
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", b.Name, err)
		}
		breaks = append(breaks, Break{Name: b.Name, Interval: iv})
	}
	return NewGrid(loc, open, slots, breaks)
}

func parseInterval(start, end string) (SlotInterval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return SlotInterval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return SlotInterval{}, err
	}
	return SlotInterval{Start: s, End: e}, nil
}

func (g groupDoc) table(name string, grid *Grid, faculty map[string]string) (*WeeklyTable, error) {
	rows := make(map[Day][]*Entry, len(g.Days))
	for key, docs := range g.Days {
		day, err := ParseDay(key)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		if _, dup := rows[day]; dup {
			return nil, fmt.Errorf("group %q: %s listed twice", name, day)
		}
		row := make([]*Entry, len(docs))
		for i, ed := range docs {
			if ed == nil {
				continue
			}
			if err := validate.Struct(ed); err != nil {
				return nil, fmt.Errorf("group %q %s slot %d: %w", name, day, i, err)
			}
			row[i] = &Entry{Label: ed.Label, Location: ed.Location, Owner: ownerOf(ed, faculty)}
		}
		rows[day] = row
	}

	closed := make([]Day, 0, len(g.Closed))
	for _, c := range g.Closed {
		day, err := ParseDay(c)
		if err != nil {
			return nil, fmt.Errorf("group %q closed days: %w", name, err)
		}
		closed = append(closed, day)
	}
	return NewWeeklyTable(name, grid, rows, closed)
}

// ownerOf prefers the entry's own owner, then the faculty listed for the first
// word of its label ("AIML LAB" -> "AIML").
func ownerOf(ed *entryDoc, faculty map[string]string) string {
	if ed.Owner != "" {
		return ed.Owner
	}
	fields := strings.Fields(ed.Label)
	if len(fields) == 0 {
		return ""
	}
	return faculty[fields[0]]
}
