package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/model"
)

type breweryRepository interface {
	GetBreweryByID(ctx context.Context, id uint) (*model.Brewery, error)
	ListBreweries(ctx context.Context, query string, limit int) ([]*model.Brewery, error)
	ListAllBreweries(ctx context.Context) ([]*model.Brewery, error)
	AddBrewery(ctx context.Context, brewery model.Brewery) (*model.Brewery, error)
	UpdateBrewery(ctx context.Context, brewery *model.Brewery) error
}

type BreweryHandler struct {
	breweries breweryRepository
	logger    *zap.Logger
}

func NewBreweryHandler(breweries breweryRepository, logger *zap.Logger) *BreweryHandler {
	return &BreweryHandler{breweries: breweries, logger: logger}
}

func (h *BreweryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	breweries, err := h.breweries.ListBreweries(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, breweries)
}

// ListAll backs the brewery pickers on the owner dashboard; no paging.
func (h *BreweryHandler) ListAll(c *gin.Context) {
	breweries, err := h.breweries.ListAllBreweries(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, breweries)
}

func (h *BreweryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	brewery, err := h.breweries.GetBreweryByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, brewery)
}

type breweryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Locality    string  `json:"locality"`
	Region      *string `json:"region"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
	LogoURL     string  `json:"logoUrl"`
	WebsiteURL  string  `json:"websiteUrl"`
}

func (h *BreweryHandler) Create(c *gin.Context) {
	var req breweryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	brewery, err := h.breweries.AddBrewery(c.Request.Context(), model.Brewery{
		Name:        req.Name,
		Locality:    req.Locality,
		Region:      req.Region,
		Country:     req.Country,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, brewery)
}

type breweryPatchRequest struct {
	Name        *string `json:"name"`
	Locality    *string `json:"locality"`
	Region      *string `json:"region"`
	Country     *string `json:"country"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
}

func (h *BreweryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	brewery, err := h.breweries.GetBreweryByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	var req breweryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.Name != nil {
		brewery.Name = *req.Name
	}

	if req.Locality != nil {
		brewery.Locality = *req.Locality
	}

	if req.Region != nil {
		brewery.Region = req.Region
	}

	if req.Country != nil {
		brewery.Country = *req.Country
	}

	if req.Description != nil {
		brewery.Description = *req.Description
	}

	if req.LogoURL != nil {
		brewery.LogoURL = *req.LogoURL
	}

	if req.WebsiteURL != nil {
		brewery.WebsiteURL = *req.WebsiteURL
	}

	if err := h.breweries.UpdateBrewery(c.Request.Context(), brewery); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, brewery)
}
