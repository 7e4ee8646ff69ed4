// Package catalog owns the persisted restaurant collection and its embedded
// reservation lists.
package catalog

import "context"

// DateTimeLayout is the wire format for reservation timestamps.
const DateTimeLayout = "2006-01-02 15:04"

// StatusConfirmed is the only reservation status written in this scope;
// there is no cancellation or modification path.
const StatusConfirmed = "confirmed"

type Hours struct {
	Weekdays string `json:"weekdays"`
	Weekends string `json:"weekends"`
}

// Reservation ids are unique within the owning restaurant only: 1-based and
// derived from the current list length at commit time.
type Reservation struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	DateTime  string `json:"datetime"`
	PartySize int    `json:"party_size"`
	Status    string `json:"status"`
}

type Restaurant struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Cuisine      string        `json:"cuisine"`
	Location     string        `json:"location"`
	PriceRange   string        `json:"price_range"`
	Rating       float64       `json:"rating"`
	Seating      []string      `json:"seating_arrangements"`
	Capacity     int           `json:"capacity"`
	OpeningHours Hours         `json:"opening_hours"`
	Specialties  []string      `json:"specialties"`
	Address      string        `json:"address"`
	Contact      string        `json:"contact"`
	Reservations []Reservation `json:"reservations"`
}

// Store round-trips the full collection; there is no partial-update API.
type Store interface {
	Load(ctx context.Context) ([]Restaurant, error)
	Save(ctx context.Context, restaurants []Restaurant) error
}

// FindByID returns a pointer into restaurants so callers can mutate the
// matched element in place.
func FindByID(restaurants []Restaurant, id int64) (*Restaurant, bool) {
	for i := range restaurants {
		if restaurants[i].ID == id {
			return &restaurants[i], true
		}
	}
	return nil, false
}
