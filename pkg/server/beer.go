package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/integrations"
	"fermenta.to/Fermenta/pkg/model"
)

type beerRepository interface {
	GetBeerByID(ctx context.Context, id uint) (*model.Beer, error)
	ListBeers(ctx context.Context, query string, limit int) ([]*model.Beer, error)
	AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error)
	AddBeerWithBrewery(ctx context.Context, beer model.Beer, breweryName string) (*model.Beer, error)
	AddBeerStyle(ctx context.Context, style string) (*model.BeerStyle, error)
	UpdateBeer(ctx context.Context, beer *model.Beer) error
}

type BeerHandler struct {
	beers  beerRepository
	logger *zap.Logger
	config *configs.Config
}

func NewBeerHandler(beers beerRepository, logger *zap.Logger, config *configs.Config) *BeerHandler {
	return &BeerHandler{beers: beers, logger: logger, config: config}
}

func (h *BeerHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	beers, err := h.beers.ListBeers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, beers)
}

func (h *BeerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	beer, err := h.beers.GetBeerByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, beer)
}

// Lookup queries the configured catalog integrations instead of the local
// database; the admin beer form uses it to prefill new entries.
func (h *BeerHandler) Lookup(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "missing query")

		return
	}

	var beers []model.Beer

	for _, name := range h.config.Integrations.Beer {
		integration := integrations.GetIntegration(name, h.logger)
		if integration == nil {
			continue
		}

		found, err := integration.FindBeer(query)
		if err != nil {
			h.logger.Error("catalog lookup failed", zap.String("integration", name), zap.Error(err))

			continue
		}

		beers = append(beers, found...)
	}

	c.JSON(http.StatusOK, beers)
}

type beerRequest struct {
	Name        string   `json:"name" binding:"required"`
	BreweryID   uint     `json:"breweryId"`
	BreweryName string   `json:"breweryName"`
	Style       string   `json:"style"`
	ABV         *float64 `json:"abv"`
	IBU         *uint64  `json:"ibu"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Color       string   `json:"color"`
	Bottled     bool     `json:"bottled"`
}

// Create accepts either a known brewery id or a brewery name; the name path
// creates the brewery and the beer in one transaction.
func (h *BeerHandler) Create(c *gin.Context) {
	var req beerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.BreweryID == 0 && req.BreweryName == "" {
		respondError(c, http.StatusBadRequest, "breweryId or breweryName is required")

		return
	}

	beer := model.Beer{
		Name:        req.Name,
		BreweryID:   req.BreweryID,
		ABV:         req.ABV,
		IBU:         req.IBU,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Color:       req.Color,
		Bottled:     req.Bottled,
	}

	if req.Style != "" {
		style, err := h.beers.AddBeerStyle(c.Request.Context(), req.Style)
		if err != nil {
			respondRepositoryError(c, h.logger, err)

			return
		}

		beer.StyleID = style.ID
	}

	var (
		created *model.Beer
		err     error
	)

	if req.BreweryID != 0 {
		created, err = h.beers.AddBeer(c.Request.Context(), beer)
	} else {
		created, err = h.beers.AddBeerWithBrewery(c.Request.Context(), beer, req.BreweryName)
	}

	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, created)
}

type beerPatchRequest struct {
	Name        *string  `json:"name"`
	Style       *string  `json:"style"`
	ABV         *float64 `json:"abv"`
	IBU         *uint64  `json:"ibu"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Color       *string  `json:"color"`
	Bottled     *bool    `json:"bottled"`
}

func (h *BeerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	beer, err := h.beers.GetBeerByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	var req beerPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if req.Name != nil {
		beer.Name = *req.Name
	}

	if req.Style != nil {
		style, err := h.beers.AddBeerStyle(c.Request.Context(), *req.Style)
		if err != nil {
			respondRepositoryError(c, h.logger, err)

			return
		}

		beer.StyleID = style.ID
	}

	if req.ABV != nil {
		beer.ABV = req.ABV
	}

	if req.IBU != nil {
		beer.IBU = req.IBU
	}

	if req.Description != nil {
		beer.Description = *req.Description
	}

	if req.ImageURL != nil {
		beer.ImageURL = *req.ImageURL
	}

	if req.Color != nil {
		beer.Color = *req.Color
	}

	if req.Bottled != nil {
		beer.Bottled = *req.Bottled
	}

	if err := h.beers.UpdateBeer(c.Request.Context(), beer); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, beer)
}
