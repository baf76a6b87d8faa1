package handler

import (
	"net/http"

	"dealflow/internal/dto"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type BuyingPartiesHandler struct{ svc service.BuyingPartyService }

func NewBuyingPartiesHandler(svc service.BuyingPartyService) *BuyingPartiesHandler {
	return &BuyingPartiesHandler{svc: svc}
}

// List godoc
// @Summary List buying parties
// @Tags buying-parties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BuyingPartyResponse
// @Router /buying-parties [get]
func (h *BuyingPartiesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a buying party
// @Tags buying-parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBuyingPartyRequest true "Party"
// @Success 201 {object} dto.BuyingPartyResponse
// @Router /buying-parties [post]
func (h *BuyingPartiesHandler) Create(c *gin.Context) {
	var req dto.CreateBuyingPartyRequest
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

// Get godoc
// @Summary Get a buying party
// @Tags buying-parties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Party ID"
// @Success 200 {object} dto.BuyingPartyResponse
// @Router /buying-parties/{id} [get]
func (h *BuyingPartiesHandler) Get(c *gin.Context) {
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

// Delete godoc
// @Summary Delete a buying party and its matches
// @Tags buying-parties
// @Security BearerAuth
// @Param id path string true "Party ID"
// @Success 204
// @Router /buying-parties/{id} [delete]
func (h *BuyingPartiesHandler) Delete(c *gin.Context) {
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
