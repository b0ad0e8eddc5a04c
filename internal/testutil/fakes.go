// Package testutil provides in-memory stand-ins for the persistence and
// artifact collaborators, used by service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"smartparking/internal/db"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/ticket"
)

// MemReservationStore is an in-memory ReservationStore. Each call is atomic,
// matching the per-record atomicity the real store provides.
type MemReservationStore struct {
	mu           sync.Mutex
	nextID       int
	reservations map[int]db.Reservation
}

func NewMemReservationStore() *MemReservationStore {
	return &MemReservationStore{nextID: 1, reservations: make(map[int]db.Reservation)}
}

func (s *MemReservationStore) Create(ctx context.Context, res *db.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res.ID = s.nextID
	s.nextID++
	s.reservations[res.ID] = *res
	return nil
}

func (s *MemReservationStore) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, apperrors.NotFound("reservation %d not found", id)
	}
	return &res, nil
}

func (s *MemReservationStore) Update(ctx context.Context, res *db.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[res.ID]; !ok {
		return apperrors.NotFound("reservation %d not found", res.ID)
	}
	s.reservations[res.ID] = *res
	return nil
}

func (s *MemReservationStore) ListByUser(ctx context.Context, userID int) ([]db.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Reservation
	for id := 1; id < s.nextID; id++ {
		if res, ok := s.reservations[id]; ok && res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (s *MemReservationStore) CountActiveByCategory(ctx context.Context, category db.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, res := range s.reservations {
		if res.Category == category && res.Active() {
			count++
		}
	}
	return count, nil
}

func (s *MemReservationStore) ActiveCountsByCategory(ctx context.Context) (map[db.Category]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[db.Category]int, len(db.Categories))
	for _, c := range db.Categories {
		counts[c] = 0
	}
	for _, res := range s.reservations {
		if res.Active() {
			counts[res.Category]++
		}
	}
	return counts, nil
}

func (s *MemReservationStore) SumFees(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, res := range s.reservations {
		total += res.Fee
	}
	return total, nil
}

type MemUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]db.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{nextID: 1, users: make(map[int]db.User)}
}

func (s *MemUserStore) Create(ctx context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *MemUserStore) GetByID(ctx context.Context, id int) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user %d not found", id)
	}
	return &user, nil
}

func (s *MemUserStore) GetByPhone(ctx context.Context, phone string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Phone == phone {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user with phone %s not found", phone)
}

func (s *MemUserStore) Update(ctx context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.NotFound("user %d not found", user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

// FakeTickets records the payload of every produced ticket. With Fail set it
// simulates artifact storage being down.
type FakeTickets struct {
	mu       sync.Mutex
	Fail     bool
	payloads map[int]string
}

func NewFakeTickets() *FakeTickets {
	return &FakeTickets{payloads: make(map[int]string)}
}

func (f *FakeTickets) Produce(reservationID int, summary string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return "", apperrors.ArtifactUnavailable(nil, "could not write ticket for reservation %d", reservationID)
	}
	f.payloads[reservationID] = ticket.Payload(reservationID, summary)
	return fmt.Sprintf("qr_codes/reservation_%d.png", reservationID), nil
}

// Payload returns the last payload produced for the reservation.
func (f *FakeTickets) Payload(reservationID int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloads[reservationID]
}

// RecordingNotifier counts lifecycle events.
type RecordingNotifier struct {
	mu        sync.Mutex
	confirmed int
	cancelled int
}

func (n *RecordingNotifier) ReservationConfirmed(*db.User, *db.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed++
}

func (n *RecordingNotifier) ReservationCancelled(*db.User, *db.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled++
}

func (n *RecordingNotifier) ConfirmedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.confirmed
}

func (n *RecordingNotifier) CancelledCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancelled
}
