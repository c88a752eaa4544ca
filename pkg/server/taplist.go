package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
)

type pubContentRepository interface {
	GetPubByID(ctx context.Context, id uint) (*model.Pub, error)

	GetTapList(ctx context.Context, pubID uint) ([]*model.TapEntry, error)
	GetTapEntryByID(ctx context.Context, id uint) (*model.TapEntry, error)
	AddTapEntry(ctx context.Context, entry model.TapEntry) (*model.TapEntry, error)
	UpdateTapEntry(ctx context.Context, entry *model.TapEntry) error
	DeleteTapEntry(ctx context.Context, id uint) error

	GetBottleList(ctx context.Context, pubID uint) ([]*model.BottleEntry, error)
	GetBottleEntryByID(ctx context.Context, id uint) (*model.BottleEntry, error)
	AddBottleEntry(ctx context.Context, entry model.BottleEntry) (*model.BottleEntry, error)
	UpdateBottleEntry(ctx context.Context, entry *model.BottleEntry) error
	DeleteBottleEntry(ctx context.Context, id uint) error

	GetMenu(ctx context.Context, pubID uint) ([]*model.MenuCategory, error)
	GetMenuCategoryByID(ctx context.Context, id uint) (*model.MenuCategory, error)
	AddMenuCategory(ctx context.Context, category model.MenuCategory) (*model.MenuCategory, error)
	UpdateMenuCategory(ctx context.Context, category *model.MenuCategory) error
	DeleteMenuCategory(ctx context.Context, id uint) error
	GetMenuItemByID(ctx context.Context, id uint) (*model.MenuItem, error)
	AddMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *model.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error
}

// PubContentHandler serves the nested pub collections: tap list, bottle
// list and food menu. Every path is scoped by pubId; every write passes the
// owner-or-admin check.
type PubContentHandler struct {
	repo   pubContentRepository
	logger *zap.Logger
}

func NewPubContentHandler(repo pubContentRepository, logger *zap.Logger) *PubContentHandler {
	return &PubContentHandler{repo: repo, logger: logger}
}

// requirePubOwnership resolves the pub from the path and enforces the
// subsystem's authorization rule for mutations.
func (h *PubContentHandler) requirePubOwnership(c *gin.Context) (*model.Pub, bool) {
	pubID, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	pub, err := h.repo.GetPubByID(c.Request.Context(), pubID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return nil, false
	}

	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return nil, false
	}

	if !user.IsAdmin() && (pub.OwnerID == nil || *pub.OwnerID != user.ID) {
		respondError(c, http.StatusForbidden, "not the owner of this pub")

		return nil, false
	}

	return pub, true
}

func (h *PubContentHandler) GetTapList(c *gin.Context) {
	pubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.repo.GetTapList(c.Request.Context(), pubID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	response := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		response = append(response, tapEntryResponse(entry))
	}

	c.JSON(http.StatusOK, response)
}

type tapEntryRequest struct {
	BeerID    uint            `json:"beerId" binding:"required"`
	TapNumber int             `json:"tapNumber" binding:"required,min=1"`
	Prices    model.PriceList `json:"prices" binding:"required"`
	Visible   *bool           `json:"visible"`
}

func (h *PubContentHandler) AddTapEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	var req tapEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	entry, err := h.repo.AddTapEntry(c.Request.Context(), model.TapEntry{
		PubID:     pub.ID,
		BeerID:    req.BeerID,
		TapNumber: req.TapNumber,
		Prices:    req.Prices,
		Active:    true,
		Visible:   visible,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, tapEntryResponse(entry))
}

type tapEntryPatchRequest struct {
	TapNumber *int             `json:"tapNumber" binding:"omitempty,min=1"`
	Prices    *model.PriceList `json:"prices"`
	Active    *bool            `json:"active"`
	Visible   *bool            `json:"visible"`
}

func (h *PubContentHandler) UpdateTapEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	entry, err := h.repo.GetTapEntryByID(c.Request.Context(), entryID)
	if err != nil || entry.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	var req tapEntryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.TapNumber != nil {
		entry.TapNumber = *req.TapNumber
	}

	if req.Prices != nil {
		entry.Prices = *req.Prices
	}

	if req.Active != nil {
		entry.Active = *req.Active
	}

	if req.Visible != nil {
		entry.Visible = *req.Visible
	}

	if err := h.repo.UpdateTapEntry(c.Request.Context(), entry); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, tapEntryResponse(entry))
}

func (h *PubContentHandler) DeleteTapEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	entry, err := h.repo.GetTapEntryByID(c.Request.Context(), entryID)
	if err != nil || entry.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	if err := h.repo.DeleteTapEntry(c.Request.Context(), entryID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PubContentHandler) GetBottleList(c *gin.Context) {
	pubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.repo.GetBottleList(c.Request.Context(), pubID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, entries)
}

type bottleEntryRequest struct {
	BeerID   uint    `json:"beerId" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Size     string  `json:"size" binding:"required"`
	Quantity *int    `json:"quantity"`
	Visible  *bool   `json:"visible"`
}

func (h *PubContentHandler) AddBottleEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	var req bottleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	size, err := model.ParseBottleSize(req.Size)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	entry, err := h.repo.AddBottleEntry(c.Request.Context(), model.BottleEntry{
		PubID:    pub.ID,
		BeerID:   req.BeerID,
		Price:    req.Price,
		Size:     size,
		Quantity: req.Quantity,
		Visible:  visible,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, entry)
}

type bottleEntryPatchRequest struct {
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Size     *string  `json:"size"`
	Quantity *int     `json:"quantity"`
	Visible  *bool    `json:"visible"`
}

func (h *PubContentHandler) UpdateBottleEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	entry, err := h.repo.GetBottleEntryByID(c.Request.Context(), entryID)
	if err != nil || entry.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	var req bottleEntryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.Price != nil {
		entry.Price = *req.Price
	}

	if req.Size != nil {
		size, err := model.ParseBottleSize(*req.Size)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())

			return
		}

		entry.Size = size
	}

	if req.Quantity != nil {
		entry.Quantity = req.Quantity
	}

	if req.Visible != nil {
		entry.Visible = *req.Visible
	}

	if err := h.repo.UpdateBottleEntry(c.Request.Context(), entry); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *PubContentHandler) DeleteBottleEntry(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	entry, err := h.repo.GetBottleEntryByID(c.Request.Context(), entryID)
	if err != nil || entry.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	if err := h.repo.DeleteBottleEntry(c.Request.Context(), entryID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PubContentHandler) GetMenu(c *gin.Context) {
	pubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	menu, err := h.repo.GetMenu(c.Request.Context(), pubID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, menu)
}

type menuCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

func (h *PubContentHandler) AddMenuCategory(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	var req menuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	category, err := h.repo.AddMenuCategory(c.Request.Context(), model.MenuCategory{
		PubID:    pub.ID,
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *PubContentHandler) DeleteMenuCategory(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	category, err := h.repo.GetMenuCategoryByID(c.Request.Context(), categoryID)
	if err != nil || category.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	if err := h.repo.DeleteMenuCategory(c.Request.Context(), categoryID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

type menuItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Allergens   []string `json:"allergens"`
	Position    int      `json:"position"`
}

func (h *PubContentHandler) AddMenuItem(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	category, err := h.repo.GetMenuCategoryByID(c.Request.Context(), categoryID)
	if err != nil || category.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	item, err := h.repo.AddMenuItem(c.Request.Context(), model.MenuItem{
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Allergens:   req.Allergens,
		Available:   true,
		Visible:     true,
		Position:    req.Position,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, item)
}

type menuItemPatchRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0"`
	Allergens   *[]string `json:"allergens"`
	Available   *bool     `json:"available"`
	Visible     *bool     `json:"visible"`
	Position    *int      `json:"position"`
}

func (h *PubContentHandler) UpdateMenuItem(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.repo.GetMenuItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	category, err := h.repo.GetMenuCategoryByID(c.Request.Context(), item.CategoryID)
	if err != nil || category.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	var req menuItemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}

	if req.Description != nil {
		item.Description = *req.Description
	}

	if req.Price != nil {
		item.Price = *req.Price
	}

	if req.Allergens != nil {
		item.Allergens = *req.Allergens
	}

	if req.Available != nil {
		item.Available = *req.Available
	}

	if req.Visible != nil {
		item.Visible = *req.Visible
	}

	if req.Position != nil {
		item.Position = *req.Position
	}

	if err := h.repo.UpdateMenuItem(c.Request.Context(), item); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *PubContentHandler) DeleteMenuItem(c *gin.Context) {
	pub, ok := h.requirePubOwnership(c)
	if !ok {
		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.repo.GetMenuItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	category, err := h.repo.GetMenuCategoryByID(c.Request.Context(), item.CategoryID)
	if err != nil || category.PubID != pub.ID {
		respondNestedLookup(c, h.logger, err)

		return
	}

	if err := h.repo.DeleteMenuItem(c.Request.Context(), itemID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// respondNestedLookup handles the entry-not-found and entry-belongs-to-
// another-pub cases the same way: 404, without admitting the row exists
// elsewhere.
func respondNestedLookup(c *gin.Context, logger *zap.Logger, err error) {
	if err != nil {
		respondRepositoryError(c, logger, err)

		return
	}

	respondError(c, http.StatusNotFound, "not found for this pub")
}

func tapEntryResponse(entry *model.TapEntry) gin.H {
	response := gin.H{
		"id":        entry.ID,
		"pubId":     entry.PubID,
		"beerId":    entry.BeerID,
		"tapNumber": entry.TapNumber,
		"prices":    entry.DisplayPrices(),
		"active":    entry.Active,
		"visible":   entry.Visible,
	}

	if entry.Beer.ID != 0 {
		response["beer"] = entry.Beer
	}

	return response
}
