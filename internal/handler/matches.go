package handler

import (
	"net/http"

	"dealflow/internal/dto"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchesHandler struct{ svc service.MatchService }

func NewMatchesHandler(svc service.MatchService) *MatchesHandler { return &MatchesHandler{svc: svc} }

// List godoc
// @Summary List deal/buyer matches
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param dealId query string false "Only matches of this deal"
// @Success 200 {array} dto.MatchResponse
// @Router /deal-buyer-matches [get]
func (h *MatchesHandler) List(c *gin.Context) {
	dealID, ok := queryID(c, "dealId")
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), dealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Match a buying party to a deal
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateMatchRequest true "Match"
// @Success 201 {object} dto.MatchResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /deal-buyer-matches [post]
func (h *MatchesHandler) Create(c *gin.Context) {
	var req dto.CreateMatchRequest
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
// @Summary Update a match
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Param body body dto.UpdateMatchRequest true "Changed fields"
// @Success 200 {object} dto.MatchResponse
// @Router /deal-buyer-matches/{id} [patch]
func (h *MatchesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMatchRequest
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

// Delete godoc
// @Summary Remove a buyer from a deal
// @Tags matches
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 204
// @Router /deal-buyer-matches/{id} [delete]
func (h *MatchesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get godoc
// @Summary Get a match with its checklist
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 200 {object} dto.MatchResponse
// @Router /matches/{id} [get]
func (h *MatchesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateChecklist godoc
// @Summary Replace a match's checklist
// @Description The stages field is replaced as a whole; unknown milestone keys are rejected.
// @Tags checklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Param body body dto.UpdateChecklistRequest true "Checklist"
// @Success 200 {object} dto.MatchResponse
// @Failure 422 {object} apierror.APIError
// @Router /matches/{id} [patch]
func (h *MatchesHandler) UpdateChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateChecklistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateChecklist(c.Request.Context(), id, *req.Stages)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
