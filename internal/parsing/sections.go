package parsing

import "github.com/jonathan/resume-profiler/internal/taxonomy"

// Sections is an ordered mapping of canonical section name to the lines under it.
type Sections struct {
	order   []string
	buckets map[string][]string
}

// Get returns the lines of a section and whether the section was present.
func (s *Sections) Get(name string) ([]string, bool) {
	lines, ok := s.buckets[name]
	return lines, ok
}

// Lines returns the lines of a section, or an empty slice if it was not present.
func (s *Sections) Lines(name string) []string {
	if lines, ok := s.buckets[name]; ok {
		return lines
	}
	return []string{}
}

// Names returns the section names in discovery order.
func (s *Sections) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// HeaderSplitter assigns lines to sections using exact matches against the
// section-header synonym table.
type HeaderSplitter struct {
	tables *taxonomy.Tables
}

// NewHeaderSplitter returns a splitter backed by tables.
func NewHeaderSplitter(tables *taxonomy.Tables) *HeaderSplitter {
	return &HeaderSplitter{tables: tables}
}

// Split buckets lines under the most recent header. Lines before the first
// header go to the unknown section, which is dropped when it stays empty.
// A header seen twice keeps appending to its first bucket.
func (h *HeaderSplitter) Split(lines []string) *Sections {
	s := &Sections{
		order:   []string{taxonomy.UnknownSection},
		buckets: map[string][]string{taxonomy.UnknownSection: {}},
	}
	current := taxonomy.UnknownSection

	for _, line := range lines {
		if name, ok := h.tables.SectionFor(line); ok {
			if _, seen := s.buckets[name]; !seen {
				s.order = append(s.order, name)
				s.buckets[name] = []string{}
			}
			current = name
			continue
		}
		s.buckets[current] = append(s.buckets[current], line)
	}

	if len(s.buckets[taxonomy.UnknownSection]) == 0 {
		delete(s.buckets, taxonomy.UnknownSection)
		s.order = s.order[1:]
	}
	return s
}
