package handler

import (
	"net/http"

	"dealflow/internal/apierror"
	"dealflow/internal/dto"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivitiesHandler struct{ svc service.ActivityService }

func NewActivitiesHandler(svc service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc}
}

// List godoc
// @Summary Activity timeline of a deal or party
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param entityId query string true "Deal or party ID"
// @Success 200 {array} dto.ActivityResponse
// @Router /activities [get]
func (h *ActivitiesHandler) List(c *gin.Context) {
	entityID, ok := queryID(c, "entityId")
	if !ok {
		return
	}
	if entityID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("entityId is required"))
		return
	}
	resp, err := h.svc.ListByEntity(c.Request.Context(), *entityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Log an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateActivityRequest true "Activity"
// @Success 201 {object} dto.ActivityResponse
// @Router /activities [post]
func (h *ActivitiesHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param body body dto.UpdateActivityRequest true "Changed fields"
// @Success 200 {object} dto.ActivityResponse
// @Router /activities/{id} [patch]
func (h *ActivitiesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateActivityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
