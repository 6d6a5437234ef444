package state

import (
	"strings"

	"github.com/direwen/dilemma-web/internal/survey"
)

// Rank holds the entity the participant is inspecting while ranking.
type Rank struct {
	selected *survey.Entity
}

// Select marks entity as the single selected entity.
func (r *Rank) Select(entity survey.Entity) {
	r.selected = &entity
}

// ClearSelection drops the selected entity.
func (r *Rank) ClearSelection() {
	r.selected = nil
}

// IsSelected reports whether id is the selected entity.
func (r *Rank) IsSelected(id string) bool {
	if r == nil || r.selected == nil {
		return false
	}
	id = strings.TrimSpace(id)
	return id != "" && r.selected.ID == id
}

// Selected returns the selected entity.
func (r *Rank) Selected() (survey.Entity, bool) {
	if r == nil || r.selected == nil {
		return survey.Entity{}, false
	}
	return *r.selected, true
}

// SelectByID selects the scenario entity with id, or clears the selection
// when no entity matches.
func (r *Rank) SelectByID(scenario *survey.Scenario, id string) bool {
	r.ClearSelection()
	id = strings.TrimSpace(id)
	if scenario == nil || id == "" {
		return false
	}
	for _, entity := range scenario.Entities {
		if entity.ID == id {
			r.Select(entity)
			return true
		}
	}
	return false
}
