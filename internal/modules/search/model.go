// README: Search request/result models and the external provider contract.
package search

import (
	"context"
	"fmt"
	"time"

	"atlas/internal/types"
)

type Kind string

const (
	KindFlight Kind = "flight"
	KindHotel  Kind = "hotel"
)

// Filters are optional result constraints carried on a request.
type Filters struct {
	MaxPrice *float64 `json:"max_price,omitempty"`
	MaxStops *int     `json:"max_stops,omitempty"`
}

// Request is the criteria handed to an external search provider. Exactly one
// Kind is set per request; hotel fields are ignored for flight searches and
// vice versa.
type Request struct {
	Kind Kind `json:"kind"`

	// Flight fields.
	Origin        string           `json:"origin,omitempty"`
	Destination   string           `json:"destination"`
	DepartureDate types.Date       `json:"departure_date,omitempty"`
	ReturnDate    *types.Date      `json:"return_date,omitempty"`
	Passengers    types.Passengers `json:"passengers,omitempty"`
	CabinClass    string           `json:"cabin_class,omitempty"`

	// Hotel fields.
	CheckIn  types.Date `json:"check_in,omitempty"`
	CheckOut types.Date `json:"check_out,omitempty"`
	Adults   int        `json:"adults,omitempty"`
	Rooms    int        `json:"rooms,omitempty"`

	Currency string  `json:"currency"`
	Filters  Filters `json:"filters,omitempty"`
}

type FlightOption struct {
	Airline      string      `json:"airline"`
	FlightNumber string      `json:"flight_number"`
	Departure    time.Time   `json:"departure"`
	Arrival      time.Time   `json:"arrival"`
	Stops        int         `json:"stops"`
	Price        types.Money `json:"price"`
}

type HotelOption struct {
	Name          string      `json:"name"`
	Area          string      `json:"area"`
	Rating        float32     `json:"rating"`
	PricePerNight types.Money `json:"price_per_night"`
}

type Results struct {
	Kind    Kind           `json:"kind"`
	Flights []FlightOption `json:"flights,omitempty"`
	Hotels  []HotelOption  `json:"hotels,omitempty"`
}

// Provider is the contract this backend expects from an external search
// collaborator. A provider is invoked at most once per resolved turn; any
// retry policy belongs to the provider itself.
type Provider interface {
	Search(ctx context.Context, req Request) (*Results, error)
}

// ProviderError wraps a failure from an external provider so callers can tell
// provider outages apart from local errors.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
