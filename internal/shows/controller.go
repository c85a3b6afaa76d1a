package shows

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sabhyata/internal/reservation"
	"sabhyata/internal/shared/middleware"
	"sabhyata/internal/shared/utils/response"
)

// adminHolder leases admin-blocked seats. House seats held this way still
// expire like any other lease unless the admin re-holds them.
const adminHolder = "admin:house"

type Controller interface {
	ResolveShow(c *gin.Context)
	GetShow(c *gin.Context)
	ListShowsByEvent(c *gin.Context)
	GetSeatMap(c *gin.Context)
	HoldSeats(c *gin.Context)
	ReleaseSeats(c *gin.Context)
	AdminHoldSeats(c *gin.Context)
	AdminReleaseSeats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ResolveShow(c *gin.Context) {
	var req ResolveShowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	show, err := ctrl.service.ResolveShow(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "event has no seat template" || err.Error() == "event's seat template is not published" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Show resolved successfully", show, nil)
}

func (ctrl *controller) GetShow(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	show, err := ctrl.service.GetShow(c.Request.Context(), showID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "show not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Show retrieved successfully", show, nil)
}

func (ctrl *controller) ListShowsByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	showList, err := ctrl.service.ListShowsByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Shows retrieved successfully", showList, nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	holder, _ := middleware.HolderID(c)

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), showID, holder)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "show not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (ctrl *controller) HoldSeats(c *gin.Context) {
	holder, ok := middleware.HolderID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required to hold seats", nil, nil)
		return
	}
	ctrl.holdSeats(c, holder)
}

func (ctrl *controller) AdminHoldSeats(c *gin.Context) {
	ctrl.holdSeats(c, adminHolder)
}

func (ctrl *controller) holdSeats(c *gin.Context, holder string) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	var req HoldSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hold, conflicts, err := ctrl.service.HoldSeats(c.Request.Context(), showID, holder, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrSeatConflict):
			response.RespondSeatConflict(c, "Some seats are no longer available", reservation.ConflictLabels(conflicts))
		case errors.Is(err, reservation.ErrSeatNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case err.Error() == "show not found":
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats held successfully", hold, nil)
}

func (ctrl *controller) ReleaseSeats(c *gin.Context) {
	holder, ok := middleware.HolderID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "identity required to release seats", nil, nil)
		return
	}
	ctrl.releaseSeats(c, holder)
}

func (ctrl *controller) AdminReleaseSeats(c *gin.Context) {
	ctrl.releaseSeats(c, adminHolder)
}

func (ctrl *controller) releaseSeats(c *gin.Context, holder string) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	var req ReleaseSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.ReleaseSeats(c.Request.Context(), showID, holder, req.Seats); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats released successfully", nil, nil)
}
