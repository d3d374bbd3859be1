package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
)

// UploadService issues presigned upload URLs
type UploadService interface {
	IssueUploadURL(ctx context.Context, kind leasingapp.UploadKind, req leasingapp.UploadRequest) (*leasingapp.UploadResponse, error)
}

// UploadHandler hands out upload URLs for contract documents and space photos
type UploadHandler struct {
	BaseHandler
	uploads UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploads UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// ContractDocument godoc
// @ID           uploadContractDocument
// @Summary      Get an upload URL for a contract document
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.UploadRequest true "File"
// @Success      201 {object} APIResponse[leasingapp.UploadResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /uploads/contract-documents [post]
func (h *UploadHandler) ContractDocument(c *gin.Context) {
	h.issue(c, leasingapp.UploadContractDocument)
}

// SpacePhoto godoc
// @ID           uploadSpacePhoto
// @Summary      Get an upload URL for a space photo
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.UploadRequest true "File"
// @Success      201 {object} APIResponse[leasingapp.UploadResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /uploads/space-photos [post]
func (h *UploadHandler) SpacePhoto(c *gin.Context) {
	h.issue(c, leasingapp.UploadSpacePhoto)
}

func (h *UploadHandler) issue(c *gin.Context, kind leasingapp.UploadKind) {
	var req leasingapp.UploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.uploads.IssueUploadURL(c.Request.Context(), kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, upload)
}
