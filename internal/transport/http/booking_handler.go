package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

const travelDateLayout = "2006-01-02"

type BookingHandler struct {
	bookings *service.BookingService
}

type createBookingRequest struct {
	TripID          string   `json:"trip_id"`
	TravelDate      string   `json:"travel_date"`
	Adults          int      `json:"adults"`
	Children        int      `json:"children"`
	Infants         int      `json:"infants"`
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	SpecialRequests *string  `json:"special_requests"`
	ExtraIDs        []string `json:"extra_ids"`
	RewardPhaseID   *string  `json:"reward_phase_id"`
}

type updateBookingStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

type createBookingResponse struct {
	Booking        domain.Booking `json:"booking"`
	GroupReference string         `json:"group_reference"`
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	e.POST("/api/v1/bookings", handler.create)
	e.GET("/api/v1/bookings/status", handler.lookupStatus)
	e.GET("/admin/bookings/quick-action", handler.quickAction)

	staff := e.Group("/api/v1/staff/bookings", RequireAuth(auth))
	staff.GET("", handler.list)
	staff.GET("/:id", handler.detail)
	staff.PUT("/:id/status", handler.updateStatus)
}

// create handles POST /api/v1/bookings
func (h *BookingHandler) create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	booking, err := h.bookings.Create(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingValidation),
			errors.Is(err, service.ErrRewardPhaseInactive),
			errors.Is(err, service.ErrRewardCurrencyMismatch),
			errors.Is(err, service.ErrRewardTripNotEligible),
			errors.Is(err, service.ErrRewardPhaseNotFound):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrTripNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create booking"))
		}
	}

	return c.JSON(http.StatusCreated, createBookingResponse{
		Booking:        *booking,
		GroupReference: booking.ReferenceCode(),
	})
}

func (r createBookingRequest) toInput() (service.BookingCreateInput, error) {
	var input service.BookingCreateInput

	tripID, err := uuid.Parse(strings.TrimSpace(r.TripID))
	if err != nil {
		return input, errors.New("trip_id must be a valid uuid")
	}
	travelDate, err := time.Parse(travelDateLayout, strings.TrimSpace(r.TravelDate))
	if err != nil {
		return input, errors.New("travel_date must be formatted as YYYY-MM-DD")
	}

	extraIDs := make([]uuid.UUID, 0, len(r.ExtraIDs))
	for _, raw := range r.ExtraIDs {
		id, parseErr := uuid.Parse(strings.TrimSpace(raw))
		if parseErr != nil {
			return input, errors.New("extra_ids must be valid uuids")
		}
		extraIDs = append(extraIDs, id)
	}

	var rewardPhaseID *uuid.UUID
	if r.RewardPhaseID != nil && strings.TrimSpace(*r.RewardPhaseID) != "" {
		id, parseErr := uuid.Parse(strings.TrimSpace(*r.RewardPhaseID))
		if parseErr != nil {
			return input, errors.New("reward_phase_id must be a valid uuid")
		}
		rewardPhaseID = &id
	}

	input = service.BookingCreateInput{
		TripID:          tripID,
		TravelDate:      travelDate,
		Adults:          r.Adults,
		Children:        r.Children,
		Infants:         r.Infants,
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
		ExtraIDs:        extraIDs,
		RewardPhaseID:   rewardPhaseID,
	}
	return input, nil
}

// lookupStatus handles GET /api/v1/bookings/status
func (h *BookingHandler) lookupStatus(c echo.Context) error {
	booking, err := h.bookings.LookupStatus(c.Request().Context(), c.QueryParam("reference"), c.QueryParam("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to look up booking"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

// quickAction handles GET /admin/bookings/quick-action
func (h *BookingHandler) quickAction(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, util.Error("token is required"))
	}

	booking, err := h.bookings.ApplyQuickAction(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingQuickToken):
			return c.JSON(http.StatusForbidden, util.Error("invalid or tampered action link"))
		case errors.Is(err, service.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrBookingValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to apply action"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

// list handles GET /api/v1/staff/bookings
func (h *BookingHandler) list(c echo.Context) error {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	bookings, err := h.bookings.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list bookings"))
	}
	return c.JSON(http.StatusOK, util.Data("bookings", bookings))
}

func bookingFilterFromQuery(c echo.Context) (domain.BookingListFilter, error) {
	var filter domain.BookingListFilter

	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status := domain.BookingStatus(raw)
		if !status.Valid() {
			return filter, errors.New("unknown status filter")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.QueryParam("trip_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("trip_id must be a valid uuid")
		}
		filter.TripID = &id
	}
	if raw := strings.TrimSpace(c.QueryParam("travel_from")); raw != "" {
		from, err := time.Parse(travelDateLayout, raw)
		if err != nil {
			return filter, errors.New("travel_from must be formatted as YYYY-MM-DD")
		}
		filter.TravelFrom = &from
	}
	if raw := strings.TrimSpace(c.QueryParam("travel_to")); raw != "" {
		to, err := time.Parse(travelDateLayout, raw)
		if err != nil {
			return filter, errors.New("travel_to must be formatted as YYYY-MM-DD")
		}
		filter.TravelTo = &to
	}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return filter, nil
}

// detail handles GET /api/v1/staff/bookings/{id}
func (h *BookingHandler) detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	detail, err := h.bookings.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load booking"))
	}
	return c.JSON(http.StatusOK, detail)
}

// updateStatus handles PUT /api/v1/staff/bookings/{id}/status
func (h *BookingHandler) updateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	booking, err := h.bookings.UpdateStatus(c.Request().Context(), id, domain.BookingStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update booking"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}
