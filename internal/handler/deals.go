package handler

import (
	"bytes"
	"net/http"

	"dealflow/internal/dto"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type DealsHandler struct{ svc service.DealService }

func NewDealsHandler(svc service.DealService) *DealsHandler { return &DealsHandler{svc: svc} }

// List godoc
// @Summary List deals
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param stage query string false "Pipeline stage"
// @Success 200 {array} dto.DealResponse
// @Failure 422 {object} apierror.APIError
// @Router /deals [get]
func (h *DealsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("stage"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a deal
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateDealRequest true "Deal"
// @Success 201 {object} dto.DealResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /deals [post]
func (h *DealsHandler) Create(c *gin.Context) {
	var req dto.CreateDealRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Get a deal
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} apierror.APIError
// @Router /deals/{id} [get]
func (h *DealsHandler) Get(c *gin.Context) {
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

// Update godoc
// @Summary Update a deal
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Param body body dto.UpdateDealRequest true "Changed fields"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} apierror.APIError
// @Router /deals/{id} [patch]
func (h *DealsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateDealRequest
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
// @Summary Delete a deal with its matches, activities and documents
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /deals/{id} [delete]
func (h *DealsHandler) Delete(c *gin.Context) {
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

// SaveNotes godoc
// @Summary Replace a deal's notes
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Param body body dto.UpdateNotesRequest true "Notes"
// @Success 200 {object} dto.DealResponse
// @Router /deals/{id}/notes [patch]
func (h *DealsHandler) SaveNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateNotesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveNotes(c.Request.Context(), id, *req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buyers godoc
// @Summary Buyers matched to a deal
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {array} dto.BuyerMatchRow
// @Router /deals/{id}/buyers [get]
func (h *DealsHandler) Buyers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Buyers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuyersWithNDA godoc
// @Summary Buyers that signed an NDA for a deal
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {array} dto.BuyerMatchRow
// @Router /deals/{id}/buyers-with-nda [get]
func (h *DealsHandler) BuyersWithNDA(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.BuyersWithNDA(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PinnedDocuments godoc
// @Summary Documents pinned on the deal page
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {array} dto.PinnedDocument
// @Router /deals/{id}/pinned-documents [get]
func (h *DealsHandler) PinnedDocuments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.PinnedDocuments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Teaser godoc
// @Summary Blind one-page teaser
// @Tags deals
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /deals/{id}/teaser.pdf [get]
func (h *DealsHandler) Teaser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Teaser(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="teaser.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
