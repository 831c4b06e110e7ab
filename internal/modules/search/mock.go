// README: Deterministic mock providers for demos and tests (no network).
package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"atlas/internal/types"
)

// Rate mirrors how a provider prices an option: a base fare plus a spread
// derived from the route. Amounts are in minor units.
type Rate struct {
	BaseFare int64
	Spread   int64
}

var (
	flightRate = Rate{BaseFare: 450_00, Spread: 600_00}
	hotelRate  = Rate{BaseFare: 60_00, Spread: 180_00}
)

var mockAirlines = []string{"IndiGo", "Air France", "Lufthansa", "Singapore Airlines", "ANA"}

var mockHotelNames = []string{"Grand Meridian", "City Nest", "Harbour View", "The Courtyard", "Palm Residency"}

// MockFlights is a Provider that fabricates flight options. Output is a pure
// function of the request, so repeated searches return identical results.
type MockFlights struct{}

func (MockFlights) Search(_ context.Context, req Request) (*Results, error) {
	if req.Origin == "" || req.Destination == "" || req.DepartureDate.IsZero() {
		return nil, &ProviderError{Provider: "mock-flights", Err: fmt.Errorf("incomplete criteria")}
	}

	seed := routeSeed(req.Origin, req.Destination, req.DepartureDate.String())
	res := &Results{Kind: KindFlight}

	for i := 0; i < 3; i++ {
		h := seed + uint64(i)*2654435761
		stops := int(h % 3)
		if req.Filters.MaxStops != nil && stops > *req.Filters.MaxStops {
			continue
		}

		price := flightRate.BaseFare + int64(h%uint64(flightRate.Spread))
		price += int64(req.Passengers.Total()-1) * (price * 9 / 10)
		if req.Filters.MaxPrice != nil && float64(price)/100 > *req.Filters.MaxPrice {
			continue
		}

		dep := req.DepartureDate.Time().Add(time.Duration(6+4*i) * time.Hour)
		res.Flights = append(res.Flights, FlightOption{
			Airline:      mockAirlines[h%uint64(len(mockAirlines))],
			FlightNumber: fmt.Sprintf("%s%03d", initials(req.Destination), h%900+100),
			Departure:    dep,
			Arrival:      dep.Add(time.Duration(2+int(h%9)) * time.Hour),
			Stops:        stops,
			Price:        types.Money{Amount: price, Currency: req.Currency},
		})
	}
	return res, nil
}

// MockHotels fabricates hotel options, deterministic per request.
type MockHotels struct{}

func (MockHotels) Search(_ context.Context, req Request) (*Results, error) {
	if req.Destination == "" || req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return nil, &ProviderError{Provider: "mock-hotels", Err: fmt.Errorf("incomplete criteria")}
	}

	seed := routeSeed(req.Destination, req.CheckIn.String(), req.CheckOut.String())
	res := &Results{Kind: KindHotel}

	for i := 0; i < 3; i++ {
		h := seed + uint64(i)*40503
		price := hotelRate.BaseFare + int64(h%uint64(hotelRate.Spread))
		if req.Filters.MaxPrice != nil && float64(price)/100 > *req.Filters.MaxPrice {
			continue
		}
		res.Hotels = append(res.Hotels, HotelOption{
			Name:          fmt.Sprintf("%s %s", mockHotelNames[h%uint64(len(mockHotelNames))], req.Destination),
			Area:          "Central " + req.Destination,
			Rating:        3.5 + float32(h%16)/10,
			PricePerNight: types.Money{Amount: price, Currency: req.Currency},
		})
	}
	return res, nil
}

func routeSeed(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(p)))
		h.Write([]byte{'|'})
	}
	return h.Sum64()
}

func initials(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return "XX"
	}
	return s[:2]
}
