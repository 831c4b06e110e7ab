// README: Slot merger; layered precedence with per-field source attribution.
package dialogue

import (
	"atlas/internal/modules/profile"
	"atlas/internal/types"
)

// layer pairs a slot set with the source label it contributes.
type layer struct {
	slots  SlotSet
	source Source
}

// Merge combines the layers of a turn into the resolved slot set. Precedence,
// highest first: current utterance, follow-up recovery, prior turns, stored
// preferences. Precedence only decides between two present values; an absent
// field at a higher layer never masks a present one below it.
//
// Two special rules:
//   - Date fields: an explicit date at any layer outranks a heuristic guess
//     (holiday window, bare-month default) at a higher layer. The only thing
//     that replaces an explicit date is a newer explicit date.
//   - Passengers: the {1,0,0} default is applied here, and only here, when no
//     layer supplied a count.
func Merge(current, recovered, prior SlotSet, prefs *profile.Profile) ResolvedSlotSet {
	layers := []layer{
		{current, SourceUtterance},
		{recovered, SourceFollowUp},
		{prior, SourcePriorTurn},
		{preferenceSlots(prefs), SourcePreference},
	}

	out := ResolvedSlotSet{Sources: make(map[string]Source)}

	for _, l := range layers {
		if out.Origin == nil && l.slots.Origin != nil {
			out.Origin = l.slots.Origin
			out.Sources[FieldOrigin] = l.source
		}
		if len(out.Destinations) == 0 && len(l.slots.Destinations) > 0 {
			out.Destinations = l.slots.Destinations
			out.Sources[FieldDestination] = l.source
		}
		if out.Passengers == nil && l.slots.Passengers != nil {
			out.Passengers = l.slots.Passengers
			out.Sources[FieldPassengers] = l.source
		}
		if out.DurationDays == nil && l.slots.DurationDays != nil {
			out.DurationDays = l.slots.DurationDays
			out.Sources[FieldDuration] = l.source
		}
		if out.Price.MaxPrice == nil && l.slots.Price.MaxPrice != nil {
			out.Price.MaxPrice = l.slots.Price.MaxPrice
			out.Sources[FieldMaxPrice] = l.source
		}
		if out.Price.MaxStops == nil && l.slots.Price.MaxStops != nil {
			out.Price.MaxStops = l.slots.Price.MaxStops
			out.Sources[FieldMaxStops] = l.source
		}

		mergeDate(&out, FieldDepartureDate, l.slots.DepartureDate, l.source,
			func(r *ResolvedSlotSet) **DateValue { return &r.DepartureDate })
		mergeDate(&out, FieldReturnDate, l.slots.ReturnDate, l.source,
			func(r *ResolvedSlotSet) **DateValue { return &r.ReturnDate })
		mergeDate(&out, FieldCheckIn, l.slots.CheckIn, l.source,
			func(r *ResolvedSlotSet) **DateValue { return &r.CheckIn })
		mergeDate(&out, FieldCheckOut, l.slots.CheckOut, l.source,
			func(r *ResolvedSlotSet) **DateValue { return &r.CheckOut })
	}

	if out.Passengers == nil {
		out.Passengers = &types.Passengers{Adults: 1}
		out.Sources[FieldPassengers] = SourceDefault
	} else if out.Passengers.Adults < 1 {
		// Children and infants travel with at least one adult.
		p := *out.Passengers
		p.Adults = 1
		out.Passengers = &p
	}

	return out
}

// mergeDate picks the date for one field across layers. The first present
// value wins unless it is a heuristic guess and a lower layer carries an
// explicit date, in which case the explicit date is retained.
func mergeDate(out *ResolvedSlotSet, field string, candidate *DateValue, source Source, slot func(*ResolvedSlotSet) **DateValue) {
	if candidate == nil {
		return
	}
	cur := slot(out)
	switch {
	case *cur == nil:
		*cur = candidate
		out.Sources[field] = source
	case !(*cur).Explicit && candidate.Explicit:
		// A heuristic guess from a higher layer must not shadow an explicit
		// date carried below it.
		*cur = candidate
		out.Sources[field] = source
	}
}

// preferenceSlots projects the durable profile onto the slot space. Only the
// home city participates; cabin class and currency are applied when the
// search request is built.
func preferenceSlots(prefs *profile.Profile) SlotSet {
	var s SlotSet
	if prefs == nil {
		return s
	}
	if prefs.HomeCity != "" {
		home := prefs.HomeCity
		s.Origin = &home
	}
	return s
}
