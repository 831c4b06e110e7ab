package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Geocoder resolves free-text city names to a booking currency via the Google
// Maps Geocoding API, with the static table as a first, network-free layer.
type Geocoder struct {
	client *maps.Client
	// DefaultCurrency is used when both the table and the API come up empty.
	DefaultCurrency string
}

// NewGeocoder creates a Geocoder with the given API Key.
func NewGeocoder(apiKey string, defaultCurrency string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, DefaultCurrency: defaultCurrency}, nil
}

// CurrencyFor resolves the local currency of a destination city.
func (g *Geocoder) CurrencyFor(ctx context.Context, city string) (string, error) {
	if cur, ok := lookupCityCurrency(city); ok {
		return cur, nil
	}

	r := &maps.GeocodingRequest{
		Address:  city,
		Language: "en",
	}
	results, err := g.client.Geocode(ctx, r)
	if err != nil {
		return "", fmt.Errorf("geocode error: %w", err)
	}

	for _, result := range results {
		for _, comp := range result.AddressComponents {
			for _, t := range comp.Types {
				if t == "country" {
					if cur, ok := CurrencyForCountry(comp.ShortName); ok {
						return cur, nil
					}
				}
			}
		}
	}
	return g.DefaultCurrency, nil
}
