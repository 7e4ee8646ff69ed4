package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type BunConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type restaurantRow struct {
	bun.BaseModel `bun:"table:restaurants,alias:r"`

	ID           int64         `bun:"id,pk"`
	Name         string        `bun:"name,notnull"`
	Cuisine      string        `bun:"cuisine"`
	Location     string        `bun:"location"`
	PriceRange   string        `bun:"price_range"`
	Rating       float64       `bun:"rating"`
	Seating      []string      `bun:"seating,array"`
	Capacity     int           `bun:"capacity"`
	OpeningHours Hours         `bun:"opening_hours,type:jsonb"`
	Specialties  []string      `bun:"specialties,array"`
	Address      string        `bun:"address"`
	Contact      string        `bun:"contact"`
	Reservations []Reservation `bun:"reservations,type:jsonb"`
}

// BunStore persists the catalog in postgres. Save keeps the whole-collection
// overwrite semantics of the file store: one transaction that truncates and
// re-inserts every row.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(cfg BunConfig) *BunStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(cfg.Timeout),
	))
	return &BunStore{db: bun.NewDB(sqldb, pgdialect.New())}
}

// Init creates the restaurants table when it does not exist yet.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*restaurantRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create restaurants table: %w", err)
	}
	return nil
}

func (s *BunStore) Load(ctx context.Context) ([]Restaurant, error) {
	var rows []restaurantRow
	if err := s.db.NewSelect().
		Model(&rows).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select restaurants: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, row.toRestaurant())
	}
	return restaurants, nil
}

func (s *BunStore) Save(ctx context.Context, restaurants []Restaurant) error {
	rows := make([]restaurantRow, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, toRow(r))
	}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*restaurantRow)(nil)).
			Where("TRUE").
			Exec(ctx); err != nil {
			return fmt.Errorf("clear restaurants: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().
			Model(&rows).
			Exec(ctx); err != nil {
			return fmt.Errorf("insert restaurants: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

func (row restaurantRow) toRestaurant() Restaurant {
	return Restaurant{
		ID:           row.ID,
		Name:         row.Name,
		Cuisine:      row.Cuisine,
		Location:     row.Location,
		PriceRange:   row.PriceRange,
		Rating:       row.Rating,
		Seating:      row.Seating,
		Capacity:     row.Capacity,
		OpeningHours: row.OpeningHours,
		Specialties:  row.Specialties,
		Address:      row.Address,
		Contact:      row.Contact,
		Reservations: row.Reservations,
	}
}

func toRow(r Restaurant) restaurantRow {
	return restaurantRow{
		ID:           r.ID,
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Location:     r.Location,
		PriceRange:   r.PriceRange,
		Rating:       r.Rating,
		Seating:      r.Seating,
		Capacity:     r.Capacity,
		OpeningHours: r.OpeningHours,
		Specialties:  r.Specialties,
		Address:      r.Address,
		Contact:      r.Contact,
		Reservations: r.Reservations,
	}
}
