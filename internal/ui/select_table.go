// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

import (
	"sync"

	"github.com/derailed/tview"
)

// SelectTable is a table with row selection and marks.
type SelectTable struct {
	*tview.Table

	model Tabular
	marks map[string]struct{}
	mx    sync.RWMutex
}

// SetModel sets the table model.
func (s *SelectTable) SetModel(m Tabular) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.model = m
}

// GetModel returns the current model.
func (s *SelectTable) GetModel() Tabular {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.model
}

// GetSelectedItem returns the selected row's ID.
func (s *SelectTable) GetSelectedItem() string {
	row, _ := s.GetSelection()
	if row == 0 {
		return ""
	}

	cell := s.GetCell(row, 0)
	if cell == nil {
		return ""
	}

	if ref := cell.GetReference(); ref != nil {
		if id, ok := ref.(string); ok {
			return id
		}
	}
	return cell.Text
}

// GetSelectedRowIndex returns the current selection index.
func (s *SelectTable) GetSelectedRowIndex() int {
	row, _ := s.GetSelection()
	return row
}

// ClearMarks clears all marks.
func (s *SelectTable) ClearMarks() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.marks = make(map[string]struct{})
}

// ToggleMark toggles mark on current selection.
func (s *SelectTable) ToggleMark() {
	item := s.GetSelectedItem()
	if item == "" {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	if _, ok := s.marks[item]; ok {
		delete(s.marks, item)
	} else {
		s.marks[item] = struct{}{}
	}
}

// IsMarked checks if an item is marked.
func (s *SelectTable) IsMarked(item string) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()
	_, ok := s.marks[item]
	return ok
}

// GetMarked returns all marked items.
func (s *SelectTable) GetMarked() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	marked := make([]string, 0, len(s.marks))
	for k := range s.marks {
		marked = append(marked, k)
	}
	return marked
}
