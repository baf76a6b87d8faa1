package handler

import (
	"net/http"

	"dealflow/internal/dto"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactsHandler struct{ svc service.ContactService }

func NewContactsHandler(svc service.ContactService) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

// List godoc
// @Summary Contacts linked to a deal or party
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param entityId query string true "Deal or party ID"
// @Param entityType query string true "deal or party"
// @Success 200 {array} dto.ContactResponse
// @Router /contacts [get]
func (h *ContactsHandler) List(c *gin.Context) {
	var filter dto.ContactFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListByEntity(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a contact, optionally linked to a deal or party
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateContactRequest true "Contact"
// @Success 201 {object} dto.ContactResponse
// @Router /contacts [post]
func (h *ContactsHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
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
