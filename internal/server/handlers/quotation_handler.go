package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/repository/mongodb"
	"github.com/rrinox/orcamentos/internal/service/drafts"
	"github.com/rrinox/orcamentos/internal/service/quotations"
)

// QuotationHandler exposes the quotation lifecycle over HTTP.
type QuotationHandler struct {
	svc    *quotations.Service
	drafts *drafts.Service
	logger *zap.Logger
}

// NewQuotationHandler constructs the HTTP handler adapter.
func NewQuotationHandler(svc *quotations.Service, draftSvc *drafts.Service, logger *zap.Logger) *QuotationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationHandler{svc: svc, drafts: draftSvc, logger: logger}
}

// List returns every stored quotation record.
func (h *QuotationHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing quotations", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load quotations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotations": records})
}

// Save finalizes a quotation, either from a stored draft (draft_id) or from
// the inline payload. The draft is discarded once the quotation is saved.
func (h *QuotationHandler) Save(c *gin.Context) {
	var req models.SaveQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	fromDraft := req.DraftID != ""
	if fromDraft {
		resolved, err := h.drafts.SaveRequest(ctx, req.DraftID, req.Number)
		if errors.Is(err, drafts.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
			return
		}
		if err != nil {
			h.logger.Error("failed resolving draft for save", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save quotation"})
			return
		}
		draftID := req.DraftID
		req = resolved
		req.DraftID = draftID
	}

	rec, err := h.svc.Save(ctx, req)
	if err != nil {
		h.logger.Error("failed saving quotation", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to save quotation"})
		return
	}

	if fromDraft {
		if err := h.drafts.Delete(ctx, req.DraftID); err != nil {
			h.logger.Warn("failed discarding saved draft",
				zap.String("draft_id", req.DraftID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"quotation": rec})
}

// Document streams the archived PDF of a quotation.
func (h *QuotationHandler) Document(c *gin.Context) {
	doc, err := h.svc.Document(c.Request.Context(), c.Param("number"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading quotation document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load document"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// UpdateStatus applies a batch of status changes. Unknown status values are
// rejected; transitions between known values are unconstrained.
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updates := make(map[string]models.Status, len(req.Updates))
	for number, raw := range req.Updates {
		status, err := models.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates[number] = status
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), updates); err != nil {
		h.logger.Error("failed updating statuses", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to update statuses"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a quotation by number. Repeating a delete is a no-op.
func (h *QuotationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("number")); err != nil {
		h.logger.Error("failed deleting quotation", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to delete quotation"})
		return
	}

	c.Status(http.StatusNoContent)
}
