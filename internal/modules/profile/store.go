// README: Profile store backed by PostgreSQL.
package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Load(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	row := s.db.QueryRow(ctx, `
        SELECT home_city, preferred_cabin_class, currency, interests, travel_style
        FROM user_profiles
        WHERE user_id = $1`, id,
	)

	var p Profile
	err := row.Scan(&p.HomeCity, &p.PreferredCabinClass, &p.Currency, &p.Interests, &p.TravelStyle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PgStore) Save(ctx context.Context, id string, p *Profile) error {
	if id == "" || p == nil {
		return ErrBadRequest
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO user_profiles (
            user_id, home_city, preferred_cabin_class, currency, interests, travel_style, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            home_city = EXCLUDED.home_city,
            preferred_cabin_class = EXCLUDED.preferred_cabin_class,
            currency = EXCLUDED.currency,
            interests = EXCLUDED.interests,
            travel_style = EXCLUDED.travel_style,
            updated_at = NOW()`,
		id, p.HomeCity, p.PreferredCabinClass, p.Currency, p.Interests, p.TravelStyle,
	)
	return err
}
