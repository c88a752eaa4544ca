package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
)

type tastingRepository interface {
	AddTasting(ctx context.Context, tasting model.Tasting) (*model.Tasting, error)
	GetTastingByID(ctx context.Context, id uint) (*model.Tasting, error)
	ListTastingsForUser(ctx context.Context, userID uint) ([]*model.Tasting, error)
	UpdateTasting(ctx context.Context, tasting *model.Tasting) error
	DeleteTasting(ctx context.Context, id uint) error
}

// TastingHandler manages a user's private tasting journal. Entries are only
// ever visible to their author.
type TastingHandler struct {
	tastings tastingRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewTastingHandler(tastings tastingRepository, logger *zap.Logger) *TastingHandler {
	return &TastingHandler{tastings: tastings, logger: logger, now: time.Now}
}

func (h *TastingHandler) List(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	tastings, err := h.tastings.ListTastingsForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, tastings)
}

type tastingRequest struct {
	BeerID   uint       `json:"beerId" binding:"required"`
	PubID    *uint      `json:"pubId"`
	Rating   int        `json:"rating" binding:"required,min=1,max=5"`
	Format   string     `json:"format"`
	Notes    string     `json:"notes"`
	TastedAt *time.Time `json:"tastedAt"`
}

func (h *TastingHandler) Create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req tastingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	tastedAt := h.now()
	if req.TastedAt != nil {
		tastedAt = *req.TastedAt
	}

	tasting, err := h.tastings.AddTasting(c.Request.Context(), model.Tasting{
		UserID:   user.ID,
		BeerID:   req.BeerID,
		PubID:    req.PubID,
		Rating:   req.Rating,
		Format:   req.Format,
		Notes:    req.Notes,
		TastedAt: tastedAt,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, tasting)
}

// ownTasting loads the entry and confirms it belongs to the caller. Other
// users' entries answer 404, not 403, so the journal stays private.
func (h *TastingHandler) ownTasting(c *gin.Context) (*model.Tasting, bool) {
	user, _ := auth.CurrentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	tasting, err := h.tastings.GetTastingByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return nil, false
	}

	if tasting.UserID != user.ID {
		respondError(c, http.StatusNotFound, "tasting not found")

		return nil, false
	}

	return tasting, true
}

type tastingPatchRequest struct {
	PubID    *uint      `json:"pubId"`
	Rating   *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	Format   *string    `json:"format"`
	Notes    *string    `json:"notes"`
	TastedAt *time.Time `json:"tastedAt"`
}

func (h *TastingHandler) Update(c *gin.Context) {
	tasting, ok := h.ownTasting(c)
	if !ok {
		return
	}

	var req tastingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.PubID != nil {
		tasting.PubID = req.PubID
	}

	if req.Rating != nil {
		tasting.Rating = *req.Rating
	}

	if req.Format != nil {
		tasting.Format = *req.Format
	}

	if req.Notes != nil {
		tasting.Notes = *req.Notes
	}

	if req.TastedAt != nil {
		tasting.TastedAt = *req.TastedAt
	}

	if err := h.tastings.UpdateTasting(c.Request.Context(), tasting); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, tasting)
}

func (h *TastingHandler) Delete(c *gin.Context) {
	tasting, ok := h.ownTasting(c)
	if !ok {
		return
	}

	if err := h.tastings.DeleteTasting(c.Request.Context(), tasting.ID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}
