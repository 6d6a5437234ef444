package survey

import (
	"encoding/json"
	"testing"
)

func TestOutcomeForZone(t *testing.T) {
	t.Parallel()

	tests := map[string]Outcome{
		ZoneA: OutcomeMaintain,
		ZoneB: OutcomeSwerveLeft,
		ZoneC: OutcomeSwerveRight,
	}
	for zone, want := range tests {
		got, ok := OutcomeForZone(zone)
		if !ok || got != want {
			t.Fatalf("OutcomeForZone(%q) = %q, %v, want %q", zone, got, ok, want)
		}
		if back := ZoneForOutcome(want); back != zone {
			t.Fatalf("ZoneForOutcome(%q) = %q, want %q", want, back, zone)
		}
	}
	if _, ok := OutcomeForZone("zone_d"); ok {
		t.Fatalf("OutcomeForZone(zone_d) ok = true, want false")
	}
}

func TestValidateRanking(t *testing.T) {
	t.Parallel()

	valid := []Outcome{OutcomeSwerveLeft, OutcomeMaintain, OutcomeSwerveRight}
	if err := ValidateRanking(valid); err != nil {
		t.Fatalf("ValidateRanking(valid) error = %v", err)
	}
	invalid := [][]Outcome{
		nil,
		{OutcomeMaintain, OutcomeSwerveLeft},
		{OutcomeMaintain, OutcomeMaintain, OutcomeSwerveLeft},
		{OutcomeMaintain, OutcomeSwerveLeft, "brake"},
	}
	for _, order := range invalid {
		if err := ValidateRanking(order); err == nil {
			t.Fatalf("ValidateRanking(%v) error = nil, want error", order)
		}
	}
}

func TestDemographicValidate(t *testing.T) {
	t.Parallel()

	ok := Demographic{AgeRange: 2, Gender: 1, Country: "NZ", DrivingExperience: 3}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	bad := []Demographic{
		{AgeRange: 0, Gender: 1, Country: "NZ", DrivingExperience: 1},
		{AgeRange: 7, Gender: 1, Country: "NZ", DrivingExperience: 1},
		{AgeRange: 1, Gender: 5, Country: "NZ", DrivingExperience: 1},
		{AgeRange: 1, Gender: 1, Country: " ", DrivingExperience: 1},
		{AgeRange: 1, Gender: 1, Country: "NZ", DrivingExperience: 4},
	}
	for _, d := range bad {
		if err := d.Validate(); err == nil {
			t.Fatalf("Validate(%+v) error = nil, want error", d)
		}
	}
}

func TestCreateSessionInputFlattensDemographics(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(CreateSessionInput{
		Demographic:     Demographic{AgeRange: 3, Gender: 2, Country: "JP", Occupation: "nurse", DrivingExperience: 2},
		Fingerprint:     "fp-1",
		SelfReportedNew: true,
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"age_range", "gender", "country", "occupation", "driving_experience", "fingerprint", "self_reported_new"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("payload missing %q: %s", key, payload)
		}
	}
}

func TestScenarioCell(t *testing.T) {
	t.Parallel()

	s := &Scenario{GridData: [][]int{{1, 2}, {3}}}
	if code, ok := s.Cell(1, 0); !ok || code != 3 {
		t.Fatalf("Cell(1, 0) = %d, %v, want 3, true", code, ok)
	}
	for _, pos := range [][2]int{{-1, 0}, {1, 1}, {2, 0}} {
		if _, ok := s.Cell(pos[0], pos[1]); ok {
			t.Fatalf("Cell(%d, %d) ok = true, want false", pos[0], pos[1])
		}
	}
	var nilScenario *Scenario
	if _, ok := nilScenario.Cell(0, 0); ok {
		t.Fatalf("nil Cell(0, 0) ok = true, want false")
	}
}
