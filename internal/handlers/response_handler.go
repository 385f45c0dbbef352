package handlers

import (
	"fmt"
	"net/http"

	"github.com/formlab/formbuilder-service/internal/repositories"
	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(
	responseService services.ResponseService,
	exportService services.ExportService,
	logger utils.Logger,
) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// CreateResponse handles POST /api/responses
func (h *ResponseHandler) CreateResponse(c *gin.Context) {
	h.LogRequest(c, "Saving response")

	var req services.CreateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if req.FormID == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Form ID is required for the response.", nil)
		return
	}
	if len(req.Answers) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Response must contain at least one answer.", nil)
		return
	}

	response, err := h.responseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Response saved successfully.", response)
}

// ListResponses handles GET /api/responses/:formId. A form without responses
// yields an empty array, not a 404.
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID, err := parseID(c.Param("formId"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form id", err)
		return
	}

	responses, err := h.responseService.ListByForm(c.Request.Context(), formID, repositories.ResponseFilters{})
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Responses retrieved successfully.", responses)
}

// ExportResponses handles GET /api/responses/:formId/export?format=csv|xlsx
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID, err := parseID(c.Param("formId"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form id", err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		data, err := h.exportService.ExportResponsesToCSV(c.Request.Context(), formID)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=form_%d_responses.csv", formID))
		c.Data(http.StatusOK, "text/csv", data)

	case "xlsx":
		data, err := h.exportService.ExportResponsesToExcel(c.Request.Context(), formID)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=form_%d_responses.xlsx", formID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", nil)
	}
}
