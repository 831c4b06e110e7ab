// README: User preference profile and the store contract.
package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrBadRequest = errors.New("bad request")
)

// Profile holds durable per-user travel preferences. Profiles are created on
// first interaction and merged additively after each turn; this module never
// deletes them.
type Profile struct {
	HomeCity            string   `json:"home_city"`
	PreferredCabinClass string   `json:"preferred_cabin_class"`
	Currency            string   `json:"currency"`
	Interests           []string `json:"interests"`
	TravelStyle         string   `json:"travel_style"`
}

// Merge folds incoming values into p. Scalar fields are only overwritten by a
// non-empty incoming value; interests are unioned. The profile is never
// replaced wholesale.
func (p *Profile) Merge(in Profile) {
	if in.HomeCity != "" {
		p.HomeCity = in.HomeCity
	}
	if in.PreferredCabinClass != "" {
		p.PreferredCabinClass = in.PreferredCabinClass
	}
	if in.Currency != "" {
		p.Currency = in.Currency
	}
	if in.TravelStyle != "" {
		p.TravelStyle = in.TravelStyle
	}
	for _, interest := range in.Interests {
		if !contains(p.Interests, interest) {
			p.Interests = append(p.Interests, interest)
		}
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Store persists profiles keyed by user or session id.
type Store interface {
	Load(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, id string, p *Profile) error
}
