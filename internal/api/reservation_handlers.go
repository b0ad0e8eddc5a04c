package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"smartparking/internal/auth"
	"smartparking/internal/db"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req entities.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	res, err := h.Service.Reserve(r.Context(), userID, req)
	respondReservation(w, http.StatusCreated, res, err,
		"reservation confirmed, but the ticket could not be generated")
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	reservations, err := h.Service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	responses := make([]entities.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, entities.NewReservationResponse(&reservations[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": responses})
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := reservationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.EditReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	res, err := h.Service.EditReservation(r.Context(), userID, id, req)
	respondReservation(w, http.StatusOK, res, err,
		"reservation updated, but the ticket could not be regenerated")
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req entities.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	h.finish(w, r, req.Status)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, db.StatusCancelled)
}

func (h *ReservationHandler) EndReservation(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, db.StatusEnded)
}

func (h *ReservationHandler) finish(w http.ResponseWriter, r *http.Request, status string) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := reservationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.Service.SetStatus(r.Context(), userID, id, status)
	respondReservation(w, http.StatusOK, res, err,
		"reservation updated, but the ticket could not be regenerated")
}

// respondReservation writes the reservation, downgrading a ticket failure to
// a warning when the mutation itself was committed: the caller must not be
// told the operation failed when the stored state already changed.
func respondReservation(w http.ResponseWriter, status int, res *db.Reservation, err error, warning string) {
	if err != nil {
		var se *apperrors.ServiceError
		if res != nil && errors.As(err, &se) && se.Code == apperrors.CodeArtifactUnavailable {
			writeJSON(w, status, map[string]interface{}{
				"reservation": entities.NewReservationResponse(res),
				"warning":     warning,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, status, map[string]interface{}{
		"reservation": entities.NewReservationResponse(res),
	})
}

func reservationID(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid reservation id %q", idStr)
	}
	return id, nil
}
