// Package grid resolves per-cell rendering state for the scenario board.
package grid

import (
	_ "embed"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Surface classifies what occupies a tile.
type Surface string

const (
	SurfaceBuilding Surface = "building"
	SurfaceWalkable Surface = "walkable"
	SurfaceDrivable Surface = "drivable"
)

// UnknownCellClass marks tiles whose code is not in the table.
const UnknownCellClass = "bg-red-500"

// CellDefinition describes how one tile code renders.
type CellDefinition struct {
	Code        int     `yaml:"code"`
	Label       string  `yaml:"label"`
	Class       string  `yaml:"class"`
	Interactive bool    `yaml:"interactive"`
	Surface     Surface `yaml:"surface"`
	Known       bool    `yaml:"-"`
}

//go:embed cells.yaml
var cellsYAML []byte

var cellTable = mustLoadCellTable(cellsYAML)

// unknownCell is returned for codes missing from the table.
var unknownCell = CellDefinition{Code: -1, Class: UnknownCellClass}

func mustLoadCellTable(raw []byte) map[string]CellDefinition {
	table, err := loadCellTable(raw)
	if err != nil {
		panic(fmt.Sprintf("grid: load cell table: %v", err))
	}
	return table
}

func loadCellTable(raw []byte) (map[string]CellDefinition, error) {
	var defs []CellDefinition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	table := make(map[string]CellDefinition, len(defs))
	for _, def := range defs {
		key := strconv.Itoa(def.Code)
		if _, dup := table[key]; dup {
			return nil, fmt.Errorf("duplicate cell code %d", def.Code)
		}
		switch def.Surface {
		case SurfaceBuilding, SurfaceWalkable, SurfaceDrivable:
		default:
			return nil, fmt.Errorf("cell code %d has unknown surface %q", def.Code, def.Surface)
		}
		def.Known = true
		table[key] = def
	}
	return table, nil
}

// Cell returns the definition for a tile code given as an int or its string
// form. Unrecognized codes yield the unknown-cell definition.
func Cell(code any) CellDefinition {
	var key string
	switch value := code.(type) {
	case int:
		key = strconv.Itoa(value)
	case string:
		key = value
	default:
		key = fmt.Sprint(value)
	}
	if def, ok := cellTable[key]; ok {
		return def
	}
	return unknownCell
}

// KnownCodes returns every code present in the table in ascending order.
func KnownCodes() []int {
	codes := make([]int, 0, len(cellTable))
	for _, def := range cellTable {
		codes = append(codes, def.Code)
	}
	slices.Sort(codes)
	return codes
}
