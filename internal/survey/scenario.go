// Package survey defines the participant-facing data model shared by the
// presentation service: scenarios, grid entities, trident zones, and the
// request/response payloads exchanged with the survey API.
package survey

import "strings"

// Direction is a compass heading used by lanes and entity orientation.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// Directions lists compass headings in lane configuration order.
var Directions = []Direction{West, East, North, South}

// Outcome names one of the three candidate responses a participant ranks.
type Outcome string

const (
	OutcomeMaintain    Outcome = "maintain"
	OutcomeSwerveLeft  Outcome = "swerve_left"
	OutcomeSwerveRight Outcome = "swerve_right"
)

// Outcomes lists every outcome in zone order.
var Outcomes = []Outcome{OutcomeMaintain, OutcomeSwerveLeft, OutcomeSwerveRight}

// Zone names for the three trident regions.
const (
	ZoneA = "zone_a"
	ZoneB = "zone_b"
	ZoneC = "zone_c"
)

var zoneOutcomes = map[string]Outcome{
	ZoneA: OutcomeMaintain,
	ZoneB: OutcomeSwerveLeft,
	ZoneC: OutcomeSwerveRight,
}

// OutcomeForZone maps a zone name to the outcome it depicts.
func OutcomeForZone(zone string) (Outcome, bool) {
	outcome, ok := zoneOutcomes[strings.TrimSpace(zone)]
	return outcome, ok
}

// ZoneForOutcome maps an outcome back to its zone name.
func ZoneForOutcome(outcome Outcome) string {
	for zone, candidate := range zoneOutcomes {
		if candidate == outcome {
			return zone
		}
	}
	return ""
}

// ParseOutcome validates a raw outcome value.
func ParseOutcome(raw string) (Outcome, bool) {
	candidate := Outcome(strings.TrimSpace(raw))
	for _, outcome := range Outcomes {
		if outcome == candidate {
			return outcome, true
		}
	}
	return "", false
}

// Coordinate is one grid cell position.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ZoneCoordinate is one trident zone cell with its resolved surface.
type ZoneCoordinate struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Surface     string `json:"surface,omitempty"`
	Orientation string `json:"orientation,omitempty"`
}

// TridentZone is one candidate outcome region.
type TridentZone struct {
	Coordinates []ZoneCoordinate `json:"coordinates"`
}

// TridentZones holds the three outcome regions of a scenario.
type TridentZones struct {
	ZoneA TridentZone `json:"zone_a"`
	ZoneB TridentZone `json:"zone_b"`
	ZoneC TridentZone `json:"zone_c"`
}

// LaneConfig lists the drivable cells of each traffic lane by heading.
type LaneConfig struct {
	W [][]int `json:"W,omitempty"`
	E [][]int `json:"E,omitempty"`
	N [][]int `json:"N,omitempty"`
	S [][]int `json:"S,omitempty"`
}

// Cells returns the configured pairs for one heading.
func (c LaneConfig) Cells(direction Direction) [][]int {
	switch direction {
	case West:
		return c.W
	case East:
		return c.E
	case North:
		return c.N
	case South:
		return c.S
	default:
		return nil
	}
}

// EntityMeta carries the behavioral flags of a grid entity.
type EntityMeta struct {
	Name        string `json:"name,omitempty"`
	IsStar      bool   `json:"is_star"`
	IsEgo       bool   `json:"is_ego"`
	IsViolation bool   `json:"is_violation"`
	Action      string `json:"action,omitempty"`
	Orientation string `json:"orientation,omitempty"`
}

// Entity is one actor placed on the scenario grid.
type Entity struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Emoji    string     `json:"emoji"`
	Row      int        `json:"row"`
	Col      int        `json:"col"`
	Metadata EntityMeta `json:"metadata"`
}

// DilemmaOptions describes each candidate outcome in prose.
type DilemmaOptions struct {
	Maintain    string `json:"maintain"`
	SwerveLeft  string `json:"swerve_left"`
	SwerveRight string `json:"swerve_right"`
}

// Text returns the description for one outcome.
func (o DilemmaOptions) Text(outcome Outcome) string {
	switch outcome {
	case OutcomeMaintain:
		return o.Maintain
	case OutcomeSwerveLeft:
		return o.SwerveLeft
	case OutcomeSwerveRight:
		return o.SwerveRight
	default:
		return ""
	}
}

// Factors records the experimental conditions a scenario was generated from.
type Factors struct {
	Visibility         string   `json:"visibility"`
	RoadCondition      string   `json:"road_condition"`
	Location           string   `json:"location"`
	BrakeStatus        string   `json:"brake_status"`
	Speed              string   `json:"speed"`
	HasTailgater       bool     `json:"has_tailgater"`
	PrimaryEntity      string   `json:"primary_entity"`
	PrimaryBehavior    string   `json:"primary_behavior"`
	BackgroundEntities []string `json:"background_entities"`
}

// Scenario is one dilemma presented to a participant.
type Scenario struct {
	ID             string         `json:"id"`
	Narrative      string         `json:"narrative"`
	DilemmaOptions DilemmaOptions `json:"dilemma_options"`
	Entities       []Entity       `json:"entities"`
	Factors        Factors        `json:"factors"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	GridData       [][]int        `json:"grid_data"`
	LaneConfig     LaneConfig     `json:"lane_config"`
	TridentZones   *TridentZones  `json:"trident_zones,omitempty"`
}

// Cell returns the cell code at a position.
func (s *Scenario) Cell(row, col int) (int, bool) {
	if s == nil || row < 0 || row >= len(s.GridData) {
		return 0, false
	}
	cells := s.GridData[row]
	if col < 0 || col >= len(cells) {
		return 0, false
	}
	return cells[col], true
}
