package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sabhyata/internal/reservation"
	"sabhyata/internal/shared/middleware"
	"sabhyata/internal/shared/utils/response"
)

type Controller interface {
	CreateBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	GetBookingByReference(c *gin.Context)
	ListMyBookings(c *gin.Context)
	ConfirmBooking(c *gin.Context)
	CancelBooking(c *gin.Context)
	RefundBooking(c *gin.Context)
	RedeemTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateBooking(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required to create a booking", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), identity, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	holder, _ := middleware.HolderID(c)

	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID, holder)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) GetBookingByReference(c *gin.Context) {
	booking, err := ctrl.service.GetBookingByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) ListMyBookings(c *gin.Context) {
	holder, ok := middleware.HolderID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required", nil, nil)
		return
	}

	bookings, err := ctrl.service.ListMyBookings(c.Request.Context(), holder, 50)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (ctrl *controller) ConfirmBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	holder, ok := middleware.HolderID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required", nil, nil)
		return
	}

	booking, err := ctrl.service.ConfirmBooking(c.Request.Context(), bookingID, holder)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking confirmed successfully", booking, nil)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	holder, ok := middleware.HolderID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required", nil, nil)
		return
	}

	booking, err := ctrl.service.CancelBooking(c.Request.Context(), bookingID, holder)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func (ctrl *controller) RefundBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := ctrl.service.RefundBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking refunded successfully", booking, nil)
}

func (ctrl *controller) RedeemTicket(c *gin.Context) {
	ticket, err := ctrl.service.RedeemTicket(c.Request.Context(), c.Param("ticketNumber"))
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTicketNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket redeemed successfully", ticket, nil)
}

func identityFromContext(c *gin.Context) (Identity, bool) {
	holder, ok := middleware.HolderID(c)
	if !ok {
		return Identity{}, false
	}

	identity := Identity{Holder: holder}

	if raw, exists := c.Get(middleware.CtxUserID); exists {
		if parsed, err := uuid.Parse(raw.(string)); err == nil {
			identity.UserID = &parsed
		}
	}
	if raw, exists := c.Get(middleware.CtxDeviceID); exists {
		identity.DeviceID, _ = raw.(string)
	}
	if raw, exists := c.Get(middleware.CtxSessionID); exists {
		identity.SessionID, _ = raw.(string)
	}

	return identity, true
}

// respondBookingError maps the booking error taxonomy onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var conflictErr *SeatConflictError
	var inconsistentErr *InconsistentStateError
	var transitionErr *InvalidTransitionError

	switch {
	case errors.As(err, &conflictErr):
		response.RespondSeatConflict(c, "Some seats are no longer available", conflictErr.Seats)
	case errors.As(err, &inconsistentErr):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, map[string]interface{}{
			"seats": inconsistentErr.Seats,
		})
	case errors.As(err, &transitionErr):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrBookingExpired):
		response.RespondJSON(c, "error", http.StatusGone, err.Error(), nil, nil)
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrNotBookingHolder):
		response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, reservation.ErrSeatNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	}
}
