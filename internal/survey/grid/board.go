package grid

import "github.com/direwen/dilemma-web/internal/survey"

// Square is the fully resolved render state of one board cell.
type Square struct {
	Row        int
	Col        int
	Code       int
	Cell       CellDefinition
	Lane       survey.Direction
	Arrow      string
	ArrowClass string
	Highlight  survey.Outcome
	OnPath     bool
	Entities   []survey.Entity
}

// Board is a scenario grid resolved row by row.
type Board struct {
	Width            int
	Height           int
	Rows             [][]Square
	ActiveDirections []survey.Direction
	Ego              *survey.Entity
}

// BuildBoard resolves every cell of a scenario grid. Declared dimensions are
// capped at the grid data; rows shorter than the widest row are padded with
// unknown cells.
func BuildBoard(scenario *survey.Scenario, zone string, approachDistance int) Board {
	if scenario == nil {
		return Board{}
	}
	lanes := NewLanes(scenario.LaneConfig)
	highlights := NewHighlighter(scenario, zone, approachDistance)

	height := len(scenario.GridData)
	if scenario.Height > 0 {
		height = min(scenario.Height, height)
	}
	width := 0
	for _, row := range scenario.GridData[:height] {
		width = max(width, len(row))
	}
	if scenario.Width > 0 {
		width = min(scenario.Width, width)
	}

	board := Board{
		Width:            width,
		Height:           height,
		Rows:             make([][]Square, 0, height),
		ActiveDirections: lanes.ActiveDirections(),
	}
	if ego, ok := highlights.Ego(); ok {
		board.Ego = &ego
	}
	for row := 0; row < height; row++ {
		squares := make([]Square, 0, width)
		for col := 0; col < width; col++ {
			square := Square{Row: row, Col: col, Code: -1, Cell: unknownCell}
			if code, ok := scenario.Cell(row, col); ok {
				square.Code = code
				square.Cell = Cell(code)
			}
			square.Lane = lanes.Direction(row, col)
			square.Arrow = Arrow(square.Lane)
			square.ArrowClass = ArrowClass(square.Lane)
			square.Highlight, _ = highlights.HighlightType(row, col)
			square.OnPath = highlights.OnApproachPath(row, col)
			square.Entities = highlights.EntitiesAt(row, col)
			squares = append(squares, square)
		}
		board.Rows = append(board.Rows, squares)
	}
	return board
}
