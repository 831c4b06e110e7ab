// README: Slot merger tests: layer precedence, masking, explicit dates,
// defaults, source attribution.
package dialogue

import (
	"testing"
	"time"

	"atlas/internal/modules/profile"
	"atlas/internal/types"
)

func strp(s string) *string { return &s }

func TestMergeCurrentUtteranceWins(t *testing.T) {
	current := SlotSet{Origin: strp("Delhi")}
	prior := SlotSet{Origin: strp("Mumbai")}
	got := Merge(current, SlotSet{}, prior, nil)
	if *got.Origin != "Delhi" {
		t.Errorf("origin = %s, want Delhi", *got.Origin)
	}
	if got.Sources[FieldOrigin] != SourceUtterance {
		t.Errorf("source = %s, want %s", got.Sources[FieldOrigin], SourceUtterance)
	}
}

func TestMergeAbsentNeverMasks(t *testing.T) {
	// The current utterance says nothing about the destination; the prior
	// turn's value must survive untouched.
	prior := SlotSet{
		Origin:       strp("Delhi"),
		Destinations: []Place{{Name: "Tokyo"}},
	}
	got := Merge(SlotSet{DurationDays: intp(5)}, SlotSet{}, prior, nil)
	if got.Origin == nil || *got.Origin != "Delhi" {
		t.Errorf("origin = %v, prior value was masked", got.Origin)
	}
	if len(got.Destinations) != 1 || got.Destinations[0].Name != "Tokyo" {
		t.Errorf("destinations = %v, prior value was masked", got.Destinations)
	}
	if got.DurationDays == nil || *got.DurationDays != 5 {
		t.Errorf("duration = %v", got.DurationDays)
	}
}

func TestMergeFollowUpBeatsPrior(t *testing.T) {
	recovered := SlotSet{Origin: strp("Mumbai")}
	prior := SlotSet{Origin: strp("Delhi")}
	got := Merge(SlotSet{}, recovered, prior, nil)
	if *got.Origin != "Mumbai" {
		t.Errorf("origin = %s, want Mumbai", *got.Origin)
	}
	if got.Sources[FieldOrigin] != SourceFollowUp {
		t.Errorf("source = %s", got.Sources[FieldOrigin])
	}
}

func TestMergePreferenceIsLastResort(t *testing.T) {
	prefs := &profile.Profile{HomeCity: "Bangalore"}
	got := Merge(SlotSet{}, SlotSet{}, SlotSet{}, prefs)
	if got.Origin == nil || *got.Origin != "Bangalore" {
		t.Fatalf("origin = %v, want home city", got.Origin)
	}
	if got.Sources[FieldOrigin] != SourcePreference {
		t.Errorf("source = %s, want %s", got.Sources[FieldOrigin], SourcePreference)
	}

	// Any layer above the profile wins.
	got = Merge(SlotSet{}, SlotSet{}, SlotSet{Origin: strp("Delhi")}, prefs)
	if *got.Origin != "Delhi" {
		t.Errorf("origin = %s, want Delhi over home city", *got.Origin)
	}
}

func TestMergeExplicitDateSurvivesHeuristic(t *testing.T) {
	// Prior turn carried an explicit date; the current turn's holiday window
	// guess must not displace it.
	explicit := &DateValue{Date: types.NewDate(2026, time.December, 13), Explicit: true}
	heuristic := &DateValue{Date: types.NewDate(2026, time.December, 24)}
	got := Merge(SlotSet{DepartureDate: heuristic}, SlotSet{}, SlotSet{DepartureDate: explicit}, nil)
	if got.DepartureDate.Date != explicit.Date {
		t.Errorf("departure = %s, explicit date was displaced by a guess", got.DepartureDate.Date)
	}
	if got.Sources[FieldDepartureDate] != SourcePriorTurn {
		t.Errorf("source = %s", got.Sources[FieldDepartureDate])
	}
}

func TestMergeNewExplicitDateReplacesOldExplicit(t *testing.T) {
	older := &DateValue{Date: types.NewDate(2026, time.December, 13), Explicit: true}
	newer := &DateValue{Date: types.NewDate(2026, time.December, 20), Explicit: true}
	got := Merge(SlotSet{DepartureDate: newer}, SlotSet{}, SlotSet{DepartureDate: older}, nil)
	if got.DepartureDate.Date != newer.Date {
		t.Errorf("departure = %s, want the newer explicit date", got.DepartureDate.Date)
	}
}

func TestMergeHeuristicFillsWhenNothingExplicit(t *testing.T) {
	heuristic := &DateValue{Date: types.NewDate(2026, time.October, 29)}
	got := Merge(SlotSet{DepartureDate: heuristic}, SlotSet{}, SlotSet{}, nil)
	if got.DepartureDate == nil || got.DepartureDate.Date != heuristic.Date {
		t.Errorf("departure = %+v", got.DepartureDate)
	}
}

func TestMergePassengerDefault(t *testing.T) {
	got := Merge(SlotSet{}, SlotSet{}, SlotSet{}, nil)
	if got.Passengers == nil || got.Passengers.Adults != 1 || got.Passengers.Children != 0 {
		t.Fatalf("passengers = %+v, want the single-adult default", got.Passengers)
	}
	if got.Sources[FieldPassengers] != SourceDefault {
		t.Errorf("source = %s, want %s", got.Sources[FieldPassengers], SourceDefault)
	}
}

func TestMergePassengerDefaultNotAppliedOverValue(t *testing.T) {
	p := &types.Passengers{Adults: 2, Children: 1}
	got := Merge(SlotSet{}, SlotSet{}, SlotSet{Passengers: p}, nil)
	if got.Passengers.Adults != 2 || got.Passengers.Children != 1 {
		t.Errorf("passengers = %+v, want the prior-turn party", got.Passengers)
	}
	if got.Sources[FieldPassengers] != SourcePriorTurn {
		t.Errorf("source = %s", got.Sources[FieldPassengers])
	}
}

func TestMergeChildOnlyPartyGainsAdult(t *testing.T) {
	p := &types.Passengers{Children: 2}
	got := Merge(SlotSet{Passengers: p}, SlotSet{}, SlotSet{}, nil)
	if got.Passengers.Adults != 1 || got.Passengers.Children != 2 {
		t.Errorf("passengers = %+v, want one adult alongside the children", got.Passengers)
	}
	if p.Adults != 0 {
		t.Error("merge must not mutate the input party")
	}
	if got.Sources[FieldPassengers] != SourceUtterance {
		t.Errorf("source = %s", got.Sources[FieldPassengers])
	}
}

func TestMergeFiltersCarryIndependently(t *testing.T) {
	price := 500.0
	stops := 0
	prior := SlotSet{Price: PriceFilters{MaxPrice: &price}}
	current := SlotSet{Price: PriceFilters{MaxStops: &stops}}
	got := Merge(current, SlotSet{}, prior, nil)
	if got.Price.MaxPrice == nil || *got.Price.MaxPrice != 500 {
		t.Errorf("maxPrice = %v", got.Price.MaxPrice)
	}
	if got.Price.MaxStops == nil || *got.Price.MaxStops != 0 {
		t.Errorf("maxStops = %v", got.Price.MaxStops)
	}
	if got.Sources[FieldMaxPrice] != SourcePriorTurn || got.Sources[FieldMaxStops] != SourceUtterance {
		t.Errorf("sources = %v", got.Sources)
	}
}

func intp(n int) *int { return &n }
