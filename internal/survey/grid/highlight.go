package grid

import (
	"github.com/direwen/dilemma-web/internal/survey"
)

// DefaultApproachDistance is the number of cells between the ego vehicle and
// the start of the trident zones.
const DefaultApproachDistance = 1

// Highlighter resolves outcome highlights for one scenario and one selected
// zone. Build a new Highlighter whenever either input changes.
type Highlighter struct {
	scenario *survey.Scenario
	active   survey.Outcome
	hasZone  bool
	ego      survey.Entity
	hasEgo   bool
	approach []survey.Coordinate
	onPath   map[string]struct{}
	zones    map[string]survey.Outcome
}

// NewHighlighter indexes a scenario for highlight queries. zone is the
// selected zone name and may be empty. Distances below one use
// DefaultApproachDistance.
func NewHighlighter(scenario *survey.Scenario, zone string, approachDistance int) Highlighter {
	if approachDistance < 1 {
		approachDistance = DefaultApproachDistance
	}
	h := Highlighter{
		scenario: scenario,
		onPath:   make(map[string]struct{}),
		zones:    make(map[string]survey.Outcome),
	}
	h.active, h.hasZone = survey.OutcomeForZone(zone)
	if scenario == nil {
		return h
	}

	// With several ego entities only the first is used.
	for _, entity := range scenario.Entities {
		if entity.Metadata.IsEgo {
			h.ego = entity
			h.hasEgo = true
			break
		}
	}
	if h.hasEgo {
		dRow, dCol := orientationStep(h.ego.Metadata.Orientation)
		for step := 1; step <= approachDistance; step++ {
			row := h.ego.Row + dRow*step
			col := h.ego.Col + dCol*step
			key := cellKey(row, col)
			if _, seen := h.onPath[key]; seen {
				continue
			}
			h.onPath[key] = struct{}{}
			h.approach = append(h.approach, survey.Coordinate{Row: row, Col: col})
		}
	}

	if zones := scenario.TridentZones; zones != nil {
		h.indexZone(zones.ZoneA, survey.OutcomeMaintain)
		h.indexZone(zones.ZoneB, survey.OutcomeSwerveLeft)
		h.indexZone(zones.ZoneC, survey.OutcomeSwerveRight)
	}
	return h
}

func (h *Highlighter) indexZone(zone survey.TridentZone, outcome survey.Outcome) {
	for _, coord := range zone.Coordinates {
		h.zones[cellKey(coord.Row, coord.Col)] = outcome
	}
}

func orientationStep(orientation string) (int, int) {
	switch survey.Direction(orientation) {
	case survey.North:
		return -1, 0
	case survey.South:
		return 1, 0
	case survey.East:
		return 0, 1
	case survey.West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Ego returns the first entity marked as ego.
func (h Highlighter) Ego() (survey.Entity, bool) {
	return h.ego, h.hasEgo
}

// ApproachPath returns the cells between the ego and the trident zones in
// stepping order.
func (h Highlighter) ApproachPath() []survey.Coordinate {
	out := make([]survey.Coordinate, len(h.approach))
	copy(out, h.approach)
	return out
}

// OnApproachPath reports whether a cell lies on the approach path.
func (h Highlighter) OnApproachPath(row, col int) bool {
	_, ok := h.onPath[cellKey(row, col)]
	return ok
}

// ActiveOutcome returns the outcome of the selected zone.
func (h Highlighter) ActiveOutcome() (survey.Outcome, bool) {
	return h.active, h.hasZone
}

// HighlightType returns the outcome highlight for a cell. Cells in the
// selected zone take its outcome, and approach path cells preview the
// selected outcome whichever zone they belong to.
func (h Highlighter) HighlightType(row, col int) (survey.Outcome, bool) {
	if !h.hasZone {
		return "", false
	}
	key := cellKey(row, col)
	if outcome, ok := h.zones[key]; ok && outcome == h.active {
		return outcome, true
	}
	if _, ok := h.onPath[key]; ok {
		return h.active, true
	}
	return "", false
}

// EntitiesAt returns every entity positioned on a cell.
func (h Highlighter) EntitiesAt(row, col int) []survey.Entity {
	if h.scenario == nil {
		return nil
	}
	var out []survey.Entity
	for _, entity := range h.scenario.Entities {
		if entity.Row == row && entity.Col == col {
			out = append(out, entity)
		}
	}
	return out
}
