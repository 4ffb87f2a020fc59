package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/service/drafts"
)

// DraftHandler exposes the quotation builder over HTTP.
type DraftHandler struct {
	svc    *drafts.Service
	logger *zap.Logger
}

// NewDraftHandler constructs the HTTP handler adapter.
func NewDraftHandler(svc *drafts.Service, logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{svc: svc, logger: logger}
}

// draftResponse augments the draft with its derived totals.
func draftResponse(draft models.Draft) gin.H {
	lines := make([]gin.H, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		lines = append(lines, gin.H{
			"id":         line.ID,
			"code":       line.Code,
			"product":    line.Product,
			"quantity":   line.Quantity,
			"unit_price": line.UnitPrice,
			"subtotal":   line.Subtotal(),
		})
	}

	return gin.H{
		"id":            draft.ID,
		"client":        draft.Client,
		"payment_terms": draft.PaymentTerms,
		"validity_days": draft.ValidityDays,
		"observations":  draft.Observations,
		"lines":         lines,
		"total":         draft.Total(),
		"created_at":    draft.CreatedAt,
		"updated_at":    draft.UpdatedAt,
	}
}

// Create opens a new draft.
func (h *DraftHandler) Create(c *gin.Context) {
	var req models.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed creating draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to create draft"})
		return
	}

	c.JSON(http.StatusCreated, draftResponse(draft))
}

// Get returns a draft with derived subtotals and total.
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondDraftError(c, err, "unable to load draft")
		return
	}

	c.JSON(http.StatusOK, draftResponse(draft))
}

// Delete discards a draft.
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed deleting draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to delete draft"})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddLine appends a catalog product to the draft.
func (h *DraftHandler) AddLine(c *gin.Context) {
	var req models.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.svc.AddLine(c.Request.Context(), c.Param("id"), req.ProductCode)
	if err != nil {
		h.respondDraftError(c, err, "unable to add line")
		return
	}

	c.JSON(http.StatusOK, draftResponse(draft))
}

// UpdateLine overwrites quantity and/or unit price of one line.
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("lineID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	var req models.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.svc.UpdateLine(c.Request.Context(), c.Param("id"), lineID, req)
	if err != nil {
		h.respondDraftError(c, err, "unable to update line")
		return
	}

	c.JSON(http.StatusOK, draftResponse(draft))
}

// RemoveLine deletes one line by identity.
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("lineID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	draft, err := h.svc.RemoveLine(c.Request.Context(), c.Param("id"), lineID)
	if err != nil {
		h.respondDraftError(c, err, "unable to remove line")
		return
	}

	c.JSON(http.StatusOK, draftResponse(draft))
}

func (h *DraftHandler) respondDraftError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, drafts.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
	case errors.Is(err, drafts.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "line not found"})
	default:
		h.logger.Error("draft operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
