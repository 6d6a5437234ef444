package grid

import (
	"strconv"

	"github.com/direwen/dilemma-web/internal/survey"
)

// NoLane is returned for cells outside every configured lane.
const NoLane survey.Direction = ""

var laneArrows = map[survey.Direction]string{
	survey.West:  "←",
	survey.East:  "→",
	survey.North: "↑",
	survey.South: "↓",
}

var laneArrowClasses = map[survey.Direction]string{
	survey.West:  "text-yellow-400/50",
	survey.East:  "text-green-400/50",
	survey.North: "text-green-400/50",
	survey.South: "text-red-400/50",
}

// Lanes answers lane membership queries for one lane configuration.
// A Lanes value is immutable; build a new one when the configuration changes.
type Lanes struct {
	byCell map[string]survey.Direction
	active []survey.Direction
}

// NewLanes indexes a lane configuration. Pairs that are not exactly
// (row, col) are skipped. When a cell appears under several headings the
// one listed last in W, E, N, S order wins.
func NewLanes(config survey.LaneConfig) Lanes {
	lanes := Lanes{byCell: make(map[string]survey.Direction)}
	for _, direction := range survey.Directions {
		cells := config.Cells(direction)
		if len(cells) > 0 {
			lanes.active = append(lanes.active, direction)
		}
		for _, pair := range cells {
			if len(pair) != 2 {
				continue
			}
			lanes.byCell[cellKey(pair[0], pair[1])] = direction
		}
	}
	return lanes
}

// Direction returns the lane heading at a cell, or NoLane.
func (l Lanes) Direction(row, col int) survey.Direction {
	if direction, ok := l.byCell[cellKey(row, col)]; ok {
		return direction
	}
	return NoLane
}

// ActiveDirections lists headings that have at least one configured cell.
func (l Lanes) ActiveDirections() []survey.Direction {
	out := make([]survey.Direction, len(l.active))
	copy(out, l.active)
	return out
}

// Arrow returns the glyph drawn for a heading.
func Arrow(direction survey.Direction) string {
	return laneArrows[direction]
}

// ArrowClass returns the style class for a heading's arrow.
func ArrowClass(direction survey.Direction) string {
	return laneArrowClasses[direction]
}

func cellKey(row, col int) string {
	return strconv.Itoa(row) + "," + strconv.Itoa(col)
}
