package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
)

type favoriteRepository interface {
	AddFavorite(ctx context.Context, userID uint, itemType model.ItemType, itemID uint) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID uint, itemType model.ItemType, itemID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]*model.Favorite, error)
}

type FavoriteHandler struct {
	favorites favoriteRepository
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites favoriteRepository, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	favorites, err := h.favorites.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	if favorites == nil {
		favorites = []*model.Favorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

type favoriteRequest struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   uint   `json:"itemId" binding:"required"`
}

// Add is idempotent: favoriting an item twice leaves a single row and both
// calls succeed.
func (h *FavoriteHandler) Add(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	itemType, err := model.ParseItemType(req.ItemType)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	favorite, err := h.favorites.AddFavorite(c.Request.Context(), user.ID, itemType, req.ItemID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	itemType, err := model.ParseItemType(c.Param("itemType"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.favorites.RemoveFavorite(c.Request.Context(), user.ID, itemType, itemID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}
