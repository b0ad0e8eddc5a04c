package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"smartparking/internal/db"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
	"smartparking/internal/ticket"
)

// Notifier is told about reservation lifecycle events. Implementations must
// not block the request; failures are theirs to log.
type Notifier interface {
	ReservationConfirmed(user *db.User, res *db.Reservation)
	ReservationCancelled(user *db.User, res *db.Reservation)
}

// NopNotifier ignores every event.
type NopNotifier struct{}

func (NopNotifier) ReservationConfirmed(*db.User, *db.Reservation) {}
func (NopNotifier) ReservationCancelled(*db.User, *db.Reservation) {}

// ReservationService drives the reservation lifecycle: admission, fee
// computation, ticket generation and status transitions.
type ReservationService struct {
	store    repository.ReservationStore
	users    repository.UserStore
	pricing  *PricingTable
	ledger   *CapacityLedger
	tickets  ticket.Producer
	notifier Notifier

	// admitMu serializes the check-then-create of Reserve per category, so
	// two concurrent requests near the cap cannot both pass the admission
	// check before either row is committed.
	admitMu map[db.Category]*sync.Mutex
}

func NewReservationService(
	store repository.ReservationStore,
	users repository.UserStore,
	pricing *PricingTable,
	ledger *CapacityLedger,
	tickets ticket.Producer,
	notifier Notifier,
) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	admitMu := make(map[db.Category]*sync.Mutex, len(db.Categories))
	for _, category := range db.Categories {
		admitMu[category] = &sync.Mutex{}
	}
	return &ReservationService{
		store:    store,
		users:    users,
		pricing:  pricing,
		ledger:   ledger,
		tickets:  tickets,
		notifier: notifier,
		admitMu:  admitMu,
	}
}

// Reserve admits, prices, persists and tickets a new reservation.
//
// If the ticket step fails the reservation is kept with an empty ticket
// path and the error is returned together with the stored reservation, so
// the caller can still hand the booking to the user.
func (s *ReservationService) Reserve(ctx context.Context, userID int, req entities.ReserveRequest) (*db.Reservation, error) {
	if !req.Category.Valid() {
		return nil, apperrors.InvalidInput("unknown category %q", req.Category)
	}
	paymentMode, err := normalizePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasVehicle() {
		return nil, apperrors.UserNotEligible("user %d has no registered vehicle, update vehicle info first", userID)
	}

	fee, err := s.pricing.Fee(req.Category, req.Hours)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := &db.Reservation{
		UserID:        user.ID,
		Category:      req.Category,
		BookingDate:   now,
		EntryTime:     now,
		Hours:         req.Hours,
		Fee:           fee,
		Status:        db.StatusBooked,
		PaymentMode:   paymentMode,
		PaymentStatus: paymentStatusLabel(paymentMode),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.admitAndCreate(ctx, res); err != nil {
		return nil, err
	}

	path, err := s.tickets.Produce(res.ID, reserveSummary(user, res))
	if err != nil {
		log.Printf("Reservation %d created but ticket generation failed: %v", res.ID, err)
		return res, err
	}
	res.TicketPath = path
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}

	s.notifier.ReservationConfirmed(user, res)
	return res, nil
}

// admitAndCreate holds the category's admission lock across the capacity
// check and the insert.
func (s *ReservationService) admitAndCreate(ctx context.Context, res *db.Reservation) error {
	mu := s.admitMu[res.Category]
	mu.Lock()
	defer mu.Unlock()

	ok, err := s.ledger.CanAdmit(ctx, res.Category)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.CapacityExceeded("sorry, the %s section is full", res.Category)
	}
	return s.store.Create(ctx, res)
}

// EditReservation applies a partial update. Nil fields stay unchanged. The
// fee is recomputed whenever hours or category change, and a category change
// re-runs the admission check against the target category.
func (s *ReservationService) EditReservation(ctx context.Context, userID, id int, req entities.EditReservationRequest) (*db.Reservation, error) {
	if req.Empty() {
		return nil, apperrors.InvalidInput("nothing to update")
	}

	res, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if res.Terminal() {
		return nil, apperrors.InvalidStatus("reservation %d is already %s and can no longer be edited", id, res.Status)
	}

	newCategory := res.Category
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, apperrors.InvalidInput("unknown category %q", *req.Category)
		}
		newCategory = *req.Category
	}
	newHours := res.Hours
	if req.Hours != nil {
		newHours = *req.Hours
	}

	fee, err := s.pricing.Fee(newCategory, newHours)
	if err != nil {
		return nil, err
	}

	if newCategory != res.Category {
		if err := s.moveCategory(ctx, res, newCategory, newHours, fee); err != nil {
			return nil, err
		}
	} else {
		res.Hours = newHours
		res.Fee = fee
		if err := s.store.Update(ctx, res); err != nil {
			return nil, err
		}
	}

	return s.regenerateTicket(ctx, res, "")
}

// moveCategory re-validates capacity in the target category before moving
// the reservation there, under the target's admission lock.
func (s *ReservationService) moveCategory(ctx context.Context, res *db.Reservation, category db.Category, hours, fee float64) error {
	mu := s.admitMu[category]
	mu.Lock()
	defer mu.Unlock()

	ok, err := s.ledger.CanAdmit(ctx, category)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.CapacityExceeded("sorry, the %s section is full", category)
	}

	res.Category = category
	res.Hours = hours
	res.Fee = fee
	return s.store.Update(ctx, res)
}

// SetStatus moves a booked reservation to cancelled or ended. Transitions
// out of a terminal state are rejected: tickets for finished reservations
// must never read as booked again.
func (s *ReservationService) SetStatus(ctx context.Context, userID, id int, newStatus string) (*db.Reservation, error) {
	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if newStatus != db.StatusCancelled && newStatus != db.StatusEnded {
		return nil, apperrors.InvalidStatus("status must be %q or %q, got %q", db.StatusCancelled, db.StatusEnded, newStatus)
	}

	res, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if res.Terminal() {
		return nil, apperrors.InvalidStatus("reservation %d is already %s", id, res.Status)
	}

	res.Status = newStatus
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}

	res, err = s.regenerateTicket(ctx, res, newStatus)
	if err != nil {
		return res, err
	}

	if newStatus == db.StatusCancelled {
		if user, userErr := s.users.GetByID(ctx, res.UserID); userErr == nil {
			s.notifier.ReservationCancelled(user, res)
		}
	}
	return res, nil
}

func (s *ReservationService) Cancel(ctx context.Context, userID, id int) (*db.Reservation, error) {
	return s.SetStatus(ctx, userID, id, db.StatusCancelled)
}

func (s *ReservationService) End(ctx context.Context, userID, id int) (*db.Reservation, error) {
	return s.SetStatus(ctx, userID, id, db.StatusEnded)
}

// getOwned loads a reservation and hides it from anyone but its owner. The
// not-found answer deliberately does not reveal whether the id exists.
func (s *ReservationService) getOwned(ctx context.Context, userID, id int) (*db.Reservation, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, apperrors.NotFound("reservation %d not found", id)
	}
	return res, nil
}

func (s *ReservationService) ListByUser(ctx context.Context, userID int) ([]db.Reservation, error) {
	return s.store.ListByUser(ctx, userID)
}

// Statistics reports lifetime revenue and per-category occupancy. Revenue
// deliberately includes cancelled and ended reservations.
func (s *ReservationService) Statistics(ctx context.Context) (*entities.StatisticsResponse, error) {
	total, err := s.store.SumFees(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.ActiveCountsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.StatisticsResponse{
		TotalRevenue:  total,
		OccupiedSpots: counts,
	}, nil
}

// regenerateTicket rewrites the reservation's QR artifact so it reflects the
// latest details. A withStatus value prepends a status line, as on tickets
// for cancelled or ended reservations. Ticket failure leaves the stored
// reservation as-is and is surfaced to the caller.
func (s *ReservationService) regenerateTicket(ctx context.Context, res *db.Reservation, withStatus string) (*db.Reservation, error) {
	user, err := s.users.GetByID(ctx, res.UserID)
	if err != nil {
		return nil, err
	}

	var summary string
	if withStatus != "" {
		summary = statusSummary(user, res, withStatus)
	} else {
		summary = reserveSummary(user, res)
	}

	path, err := s.tickets.Produce(res.ID, summary)
	if err != nil {
		log.Printf("Reservation %d updated but ticket regeneration failed: %v", res.ID, err)
		return res, err
	}
	res.TicketPath = path
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func reserveSummary(user *db.User, res *db.Reservation) string {
	return fmt.Sprintf("Name: %s\nPlate: %s\nType: %s\nFee: %.2f",
		user.Name, user.PlateNumber, res.Category, res.Fee)
}

func statusSummary(user *db.User, res *db.Reservation, status string) string {
	return fmt.Sprintf("Status: %s\nName: %s\nPlate: %s\nFee: %.2f",
		status, user.Name, user.PlateNumber, res.Fee)
}

func normalizePaymentMode(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case db.PaymentCash:
		return db.PaymentCash, nil
	case db.PaymentElectronic:
		return db.PaymentElectronic, nil
	}
	return "", apperrors.InvalidInput("payment mode must be %q or %q, got %q", db.PaymentCash, db.PaymentElectronic, mode)
}

func paymentStatusLabel(mode string) string {
	if mode == db.PaymentElectronic {
		return "Paid electronically"
	}
	return "To be paid in cash"
}
