package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedList is one key of an ordered string-list object.
type NamedList struct {
	Name  string
	Items []string
}

// SkillCategory is one taxonomy category and the skills matched under it.
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillCategories is an ordered category → skills mapping. It serializes as a JSON
// object whose keys keep taxonomy order.
type SkillCategories []SkillCategory

// Get returns the skills of the named category.
func (c SkillCategories) Get(name string) ([]string, bool) {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Skills, true
		}
	}
	return nil, false
}

// Total returns the number of skills across all categories.
func (c SkillCategories) Total() int {
	n := 0
	for _, cat := range c {
		n += len(cat.Skills)
	}
	return n
}

// Flatten walks categories in order and returns up to limit distinct skills.
func (c SkillCategories) Flatten(limit int) []string {
	out := []string{}
	if limit <= 0 {
		return out
	}
	seen := make(map[string]bool)
	for _, cat := range c {
		for _, skill := range cat.Skills {
			if seen[skill] {
				continue
			}
			seen[skill] = true
			out = append(out, skill)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// MarshalJSON writes the categories as an object in category order.
func (c SkillCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string lists, keeping key order.
func (c *SkillCategories) UnmarshalJSON(data []byte) error {
	lists, err := ParseOrderedLists(data)
	if err != nil {
		return err
	}
	out := make(SkillCategories, 0, len(lists))
	for _, l := range lists {
		out = append(out, SkillCategory{Name: l.Name, Skills: l.Items})
	}
	*c = out
	return nil
}

// ParseOrderedLists decodes a JSON object whose values are string arrays,
// preserving the order of its keys. A null value decodes to an empty list.
func ParseOrderedLists(data []byte) ([]NamedList, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var out []NamedList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if items == nil {
			items = []string{}
		}
		out = append(out, NamedList{Name: key, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
