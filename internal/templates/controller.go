package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sabhyata/internal/shared/utils/response"
)

type Controller interface {
	CreateTemplate(c *gin.Context)
	GetTemplate(c *gin.Context)
	GetTemplateByEvent(c *gin.Context)
	UpdateTemplate(c *gin.Context)
	PublishTemplate(c *gin.Context)
	UpdateCategoryPrice(c *gin.Context)
	Propagate(c *gin.Context)
	DeleteTemplate(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	template, err := ctrl.service.CreateTemplate(req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Template created successfully", template, nil)
}

func (ctrl *controller) GetTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	template, err := ctrl.service.GetTemplate(templateID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template retrieved successfully", template, nil)
}

func (ctrl *controller) GetTemplateByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	template, err := ctrl.service.GetTemplateByEvent(eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template retrieved successfully", template, nil)
}

func (ctrl *controller) UpdateTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	template, propagation, err := ctrl.service.UpdateTemplate(c.Request.Context(), templateID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	data := gin.H{"template": template}
	if propagation != nil {
		data["propagation"] = propagation
	}
	response.RespondJSON(c, "success", http.StatusOK, "Template updated successfully", data, nil)
}

func (ctrl *controller) PublishTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	template, err := ctrl.service.PublishTemplate(templateID)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template published successfully", template, nil)
}

func (ctrl *controller) UpdateCategoryPrice(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	category := c.Param("category")

	var req UpdateCategoryPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	propagation, err := ctrl.service.UpdateCategoryPrice(c.Request.Context(), templateID, category, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "category not found on template" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Category price updated successfully", propagation, nil)
}

func (ctrl *controller) Propagate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	result, err := ctrl.service.Propagate(c.Request.Context(), templateID)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template propagated successfully", result, nil)
}

func (ctrl *controller) DeleteTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTemplate(templateID); err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "template not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Template deleted successfully", nil, nil)
}
