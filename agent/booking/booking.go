// Package booking holds the reservation commit transaction, the only
// mutating operation in the conversation core.
package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
	sessionx "github.com/alfredlabs/alfred/agent/session"
)

// Ledger serializes reservation commits against a shared catalog. The
// locate-append-persist cycle is a critical section: the store has
// whole-collection write semantics, so two unserialized commits would race
// and lose one.
type Ledger struct {
	store catalogx.Store
	mu    sync.Mutex
	log   zerolog.Logger
}

func NewLedger(store catalogx.Store) *Ledger {
	return &Ledger{
		store: store,
		log:   log.With().Str("component", "booking").Logger(),
	}
}

var _ contractx.ReservationLedger = (*Ledger)(nil)

// Commit appends a confirmed reservation to the matched restaurant and
// persists the whole catalog. The reservation id is local to the restaurant:
// current list length + 1. A missing restaurant or a failed persist leaves
// the catalog unchanged.
func (l *Ledger) Commit(ctx context.Context, restaurants []catalogx.Restaurant, restaurantID int64, draft sessionx.Draft) (catalogx.Reservation, error) {
	if !draft.Complete() {
		return catalogx.Reservation{}, fmt.Errorf("reservation draft is incomplete")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	restaurant, ok := catalogx.FindByID(restaurants, restaurantID)
	if !ok {
		return catalogx.Reservation{}, fmt.Errorf("%w: id=%d", contractx.ErrRestaurantNotFound, restaurantID)
	}

	reservation := catalogx.Reservation{
		ID:        len(restaurant.Reservations) + 1,
		Name:      draft.Name,
		DateTime:  draft.When.Format(catalogx.DateTimeLayout),
		PartySize: draft.PartySize,
		Status:    catalogx.StatusConfirmed,
	}
	restaurant.Reservations = append(restaurant.Reservations, reservation)

	if err := l.store.Save(ctx, restaurants); err != nil {
		restaurant.Reservations = restaurant.Reservations[:len(restaurant.Reservations)-1]
		return catalogx.Reservation{}, fmt.Errorf("persist catalog: %w", err)
	}

	l.log.Info().
		Int64("restaurant_id", restaurantID).
		Int("reservation_id", reservation.ID).
		Int("party_size", reservation.PartySize).
		Msg("reservation committed")
	return reservation, nil
}
