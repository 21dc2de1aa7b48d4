// Package catalog provides the lecture catalog used by the search dialog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"

	"github.com/javiermolinar/timetable/internal/schedule"
)

//go:embed lectures.toml
var defaultLectures []byte

// ErrDuplicateLecture is returned when a catalog file lists the same id twice.
var ErrDuplicateLecture = errors.New("duplicate lecture id")

type catalogFile struct {
	Lectures []schedule.Lecture `toml:"lecture"`
}

// Catalog is an ordered, read-only set of lectures.
type Catalog struct {
	lectures []schedule.Lecture
	byID     map[string]int
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	lectures, err := Parse(defaultLectures)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return New(lectures...), nil
}

// Load returns the embedded catalog extended with the lectures in path.
// Lectures from path replace embedded ones with the same id. An empty path
// or a missing file yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	extra, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	for _, l := range extra {
		c.put(l)
	}
	return c, nil
}

// Parse decodes a TOML catalog and checks every lecture's schedule.
func Parse(data []byte) ([]schedule.Lecture, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(f.Lectures))
	for _, l := range f.Lectures {
		if l.ID == "" {
			return nil, fmt.Errorf("lecture %q: missing id", l.Title)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLecture, l.ID)
		}
		seen[l.ID] = true
		if _, err := ParseSchedule(l); err != nil {
			return nil, err
		}
	}
	return f.Lectures, nil
}

// New builds a catalog from lectures. Later lectures replace earlier ones
// with the same id.
func New(lectures ...schedule.Lecture) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(lectures))}
	for _, l := range lectures {
		c.put(l)
	}
	return c
}

func (c *Catalog) put(l schedule.Lecture) {
	if i, ok := c.byID[l.ID]; ok {
		c.lectures[i] = l
		return
	}
	c.byID[l.ID] = len(c.lectures)
	c.lectures = append(c.lectures, l)
}

// Len returns the number of lectures.
func (c *Catalog) Len() int {
	return len(c.lectures)
}

// Lectures returns all lectures in catalog order.
func (c *Catalog) Lectures() []schedule.Lecture {
	out := make([]schedule.Lecture, len(c.lectures))
	copy(out, c.lectures)
	return out
}

// Get returns the lecture with the given id.
func (c *Catalog) Get(id string) (schedule.Lecture, bool) {
	i, ok := c.byID[id]
	if !ok {
		return schedule.Lecture{}, false
	}
	return c.lectures[i], true
}

// Filter narrows a search.
type Filter struct {
	Day   string // keep lectures held on Day...
	Slot  int    // ...during Slot; both must be set
	Major string // exact major, case-insensitive
	Grade int    // 0 means any grade
}

// HasSlot reports whether the filter targets a specific cell.
func (f Filter) HasSlot() bool {
	return f.Day != "" && f.Slot > 0
}

func (f Filter) keep(l schedule.Lecture) bool {
	if f.Major != "" && !strings.EqualFold(f.Major, l.Major) {
		return false
	}
	if f.Grade != 0 && f.Grade != l.Grade {
		return false
	}
	if !f.HasSlot() {
		return true
	}
	entries, err := ParseSchedule(l)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Covers(f.Day, f.Slot) {
			return true
		}
	}
	return false
}

// Result is one search hit.
type Result struct {
	Lecture schedule.Lecture
	// MatchedIndexes are byte offsets into SearchText that matched the query.
	MatchedIndexes []int
}

// SearchText returns the text a lecture is matched against.
func SearchText(l schedule.Lecture) string {
	return l.Title + " " + l.ID + " " + l.Major
}

type source []schedule.Lecture

func (s source) String(i int) string { return SearchText(s[i]) }
func (s source) Len() int            { return len(s) }

// Search returns the lectures matching query and filter, best match first.
// An empty query returns every lecture that passes the filter in catalog order.
func (c *Catalog) Search(query string, f Filter) []Result {
	candidates := make(source, 0, len(c.lectures))
	for _, l := range c.lectures {
		if f.keep(l) {
			candidates = append(candidates, l)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, len(candidates))
		for i, l := range candidates {
			results[i] = Result{Lecture: l}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, candidates)
	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{
			Lecture:        candidates[match.Index],
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	return results
}
