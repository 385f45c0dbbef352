package handlers

import (
	"net/http"
	"strconv"

	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// CreateForm handles POST /api/forms
func (h *FormHandler) CreateForm(c *gin.Context) {
	h.LogRequest(c, "Creating form")

	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if req.Title == "" || len(req.Questions) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Title and at least one question are required.", nil)
		return
	}

	form, err := h.formService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Form created successfully.", form)
}

// GetForm handles GET /api/forms/:id
func (h *FormHandler) GetForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form id", err)
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Form retrieved successfully.", form)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
