package app

import (
	"sort"

	"drafter/internal/types"
)

// SectionStore holds the ordered sections of the open project. All mutation
// is addressed by stored id so late responses land on the right section
// even when the selection has moved on.
type SectionStore struct {
	ordered []*types.Section
	index   map[int]int
}

func NewSectionStore(sections []*types.Section) *SectionStore {
	ordered := make([]*types.Section, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			continue
		}
		copySection := *section
		ordered = append(ordered, &copySection)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})
	index := make(map[int]int, len(ordered))
	for i, section := range ordered {
		index[section.ID] = i
	}
	return &SectionStore{ordered: ordered, index: index}
}

func (s *SectionStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

func (s *SectionStore) At(i int) *types.Section {
	if s == nil || i < 0 || i >= len(s.ordered) {
		return nil
	}
	return s.ordered[i]
}

func (s *SectionStore) Get(id int) (*types.Section, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.ordered[i], true
}

func (s *SectionStore) IndexOf(id int) int {
	if s == nil {
		return -1
	}
	i, ok := s.index[id]
	if !ok {
		return -1
	}
	return i
}

func (s *SectionStore) First() *types.Section {
	return s.At(0)
}

// ApplyContent replaces one section's content, leaving feedback and notes
// untouched.
func (s *SectionStore) ApplyContent(id int, content string) bool {
	section, ok := s.Get(id)
	if !ok {
		return false
	}
	section.Content = content
	return true
}

func (s *SectionStore) SetFeedback(id int, kind types.Feedback) bool {
	section, ok := s.Get(id)
	if !ok {
		return false
	}
	section.Feedback = kind
	return true
}

func (s *SectionStore) SetNotes(id int, notes string) bool {
	section, ok := s.Get(id)
	if !ok {
		return false
	}
	section.UserNotes = notes
	return true
}
