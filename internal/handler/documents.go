package handler

import (
	"net/http"

	"dealflow/internal/apierror"
	"dealflow/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentsHandler struct{ svc service.DocumentService }

func NewDocumentsHandler(svc service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{svc: svc}
}

// List godoc
// @Summary Documents of a deal or party
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param entityId query string true "Deal or party ID"
// @Success 200 {array} dto.DocumentResponse
// @Router /documents [get]
func (h *DocumentsHandler) List(c *gin.Context) {
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

// Download godoc
// @Summary Redirect to a document's download URL
// @Description s3:// documents are served through a short-lived presigned URL.
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 302
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /documents/{id}/download [get]
func (h *DocumentsHandler) Download(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	url, err := h.svc.DownloadURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
