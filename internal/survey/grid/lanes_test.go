package grid

import (
	"testing"

	"github.com/direwen/dilemma-web/internal/survey"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLanesDirectionLookup(t *testing.T) {
	t.Parallel()

	lanes := NewLanes(survey.LaneConfig{
		N: [][]int{{2, 3}, {1, 3}},
		E: [][]int{{4, 0}, {4, 1}},
	})

	if got := lanes.Direction(2, 3); got != survey.North {
		t.Fatalf("Direction(2, 3) = %q, want %q", got, survey.North)
	}
	if got := lanes.Direction(4, 1); got != survey.East {
		t.Fatalf("Direction(4, 1) = %q, want %q", got, survey.East)
	}
	if got := lanes.Direction(9, 9); got != NoLane {
		t.Fatalf("Direction(9, 9) = %q, want NoLane", got)
	}
}

func TestLanesLaterHeadingWinsOnOverlap(t *testing.T) {
	t.Parallel()

	lanes := NewLanes(survey.LaneConfig{
		W: [][]int{{1, 1}},
		S: [][]int{{1, 1}},
	})
	if got := lanes.Direction(1, 1); got != survey.South {
		t.Fatalf("Direction(1, 1) = %q, want %q", got, survey.South)
	}
}

func TestLanesSkipMalformedPairs(t *testing.T) {
	t.Parallel()

	lanes := NewLanes(survey.LaneConfig{
		W: [][]int{{1}, {1, 2, 3}, {}, {0, 5}},
	})
	if got := lanes.Direction(0, 5); got != survey.West {
		t.Fatalf("Direction(0, 5) = %q, want %q", got, survey.West)
	}
	if got := lanes.Direction(1, 2); got != NoLane {
		t.Fatalf("Direction(1, 2) = %q, want NoLane", got)
	}
}

func TestLanesEmptyConfig(t *testing.T) {
	t.Parallel()

	lanes := NewLanes(survey.LaneConfig{})
	if got := lanes.Direction(0, 0); got != NoLane {
		t.Fatalf("Direction(0, 0) = %q, want NoLane", got)
	}
	if got := lanes.ActiveDirections(); len(got) != 0 {
		t.Fatalf("ActiveDirections() = %v, want empty", got)
	}

	var zero Lanes
	if got := zero.Direction(0, 0); got != NoLane {
		t.Fatalf("zero Lanes Direction(0, 0) = %q, want NoLane", got)
	}
}

func TestLanesActiveDirections(t *testing.T) {
	t.Parallel()

	lanes := NewLanes(survey.LaneConfig{
		S: [][]int{{5, 5}},
		W: [][]int{{0, 0}},
		E: [][]int{},
	})
	want := []survey.Direction{survey.West, survey.South}
	if diff := cmp.Diff(want, lanes.ActiveDirections(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("ActiveDirections() mismatch (-want +got):\n%s", diff)
	}
}

func TestArrowAndClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		direction survey.Direction
		arrow     string
		class     string
	}{
		{survey.West, "←", "text-yellow-400/50"},
		{survey.East, "→", "text-green-400/50"},
		{survey.North, "↑", "text-green-400/50"},
		{survey.South, "↓", "text-red-400/50"},
		{NoLane, "", ""},
		{survey.Direction("NE"), "", ""},
	}
	for _, tc := range tests {
		if got := Arrow(tc.direction); got != tc.arrow {
			t.Fatalf("Arrow(%q) = %q, want %q", tc.direction, got, tc.arrow)
		}
		if got := ArrowClass(tc.direction); got != tc.class {
			t.Fatalf("ArrowClass(%q) = %q, want %q", tc.direction, got, tc.class)
		}
	}
}
