package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
)

type pubRepository interface {
	GetPubByID(ctx context.Context, id uint) (*model.Pub, error)
	ListPubs(ctx context.Context, query, city string, limit int) ([]*model.Pub, error)
	GetPubsForOwner(ctx context.Context, ownerID uint) ([]*model.Pub, error)
	AddPub(ctx context.Context, pub model.Pub) (*model.Pub, error)
	UpdatePub(ctx context.Context, pub *model.Pub) error
	DeletePub(ctx context.Context, id uint) error
	GrantRole(ctx context.Context, userID uint, role model.Role) error
	ListApprovedReviewsForItem(ctx context.Context, itemType model.ItemType, itemID uint) ([]*model.Review, error)
}

type PubHandler struct {
	pubs   pubRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewPubHandler(pubs pubRepository, logger *zap.Logger) *PubHandler {
	return &PubHandler{pubs: pubs, logger: logger, now: time.Now}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad id in path")

		return 0, false
	}

	return uint(value), true
}

func (h *PubHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	pubs, err := h.pubs.ListPubs(c.Request.Context(), c.Query("q"), c.Query("city"), limit)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	response := make([]gin.H, 0, len(pubs))
	for _, pub := range pubs {
		response = append(response, h.pubResponse(pub))
	}

	c.JSON(http.StatusOK, response)
}

func (h *PubHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pub, err := h.pubs.GetPubByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, h.pubResponse(pub))
}

func (h *PubHandler) MyPubs(c *gin.Context) {
	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	pubs, err := h.pubs.GetPubsForOwner(c.Request.Context(), user.ID)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	response := make([]gin.H, 0, len(pubs))
	for _, pub := range pubs {
		response = append(response, h.pubResponse(pub))
	}

	c.JSON(http.StatusOK, response)
}

type pubRequest struct {
	Name          string             `json:"name" binding:"required"`
	BusinessName  string             `json:"businessName" binding:"required"`
	VATNumber     string             `json:"vatNumber" binding:"required,min=11"`
	StreetAddress string             `json:"streetAddress"`
	City          string             `json:"city" binding:"required"`
	Region        string             `json:"region"`
	PostalCode    string             `json:"postalCode"`
	Latitude      *float64           `json:"latitude"`
	Longitude     *float64           `json:"longitude"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email" binding:"omitempty,email"`
	Website       string             `json:"website"`
	Description   string             `json:"description"`
	ImageURL      string             `json:"imageUrl"`
	LogoURL       string             `json:"logoUrl"`
	CoverURL      string             `json:"coverUrl"`
	FacebookURL   string             `json:"facebookUrl"`
	InstagramURL  string             `json:"instagramUrl"`
	OpeningHours  model.OpeningHours `json:"openingHours"`
}

// Create registers a pub owned by the caller and grants the pub_owner role
// so the dashboard opens right away.
func (h *PubHandler) Create(c *gin.Context) {
	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	var req pubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	pub, err := h.pubs.AddPub(c.Request.Context(), model.Pub{
		Name:          req.Name,
		BusinessName:  req.BusinessName,
		VATNumber:     req.VATNumber,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		Region:        req.Region,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		Email:         req.Email,
		Website:       req.Website,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		LogoURL:       req.LogoURL,
		CoverURL:      req.CoverURL,
		FacebookURL:   req.FacebookURL,
		InstagramURL:  req.InstagramURL,
		OpeningHours:  req.OpeningHours,
		Active:        true,
		OwnerID:       &user.ID,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	if err := h.pubs.GrantRole(c.Request.Context(), user.ID, model.RolePubOwner); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, h.pubResponse(pub))
}

type pubPatchRequest struct {
	Name          *string             `json:"name"`
	BusinessName  *string             `json:"businessName"`
	VATNumber     *string             `json:"vatNumber" binding:"omitempty,min=11"`
	StreetAddress *string             `json:"streetAddress"`
	City          *string             `json:"city"`
	Region        *string             `json:"region"`
	PostalCode    *string             `json:"postalCode"`
	Latitude      *float64            `json:"latitude"`
	Longitude     *float64            `json:"longitude"`
	Phone         *string             `json:"phone"`
	Email         *string             `json:"email" binding:"omitempty,email"`
	Website       *string             `json:"website"`
	Description   *string             `json:"description"`
	ImageURL      *string             `json:"imageUrl"`
	LogoURL       *string             `json:"logoUrl"`
	CoverURL      *string             `json:"coverUrl"`
	FacebookURL   *string             `json:"facebookUrl"`
	InstagramURL  *string             `json:"instagramUrl"`
	Active        *bool               `json:"active"`
	OpeningHours  *model.OpeningHours `json:"openingHours"`
}

func (h *PubHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pub, err := h.pubs.GetPubByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	if !h.canManage(c, pub) {
		return
	}

	var req pubPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	applyPubPatch(pub, &req)

	if err := h.pubs.UpdatePub(c.Request.Context(), pub); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, h.pubResponse(pub))
}

func (h *PubHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.pubs.GetPubByID(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	if err := h.pubs.DeletePub(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PubHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.pubs.ListApprovedReviewsForItem(c.Request.Context(), model.ItemPub, id)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, reviews)
}

// canManage is the ownership rule for pub-scoped writes: the pub's owner or
// an admin.
func (h *PubHandler) canManage(c *gin.Context, pub *model.Pub) bool {
	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return false
	}

	if user.IsAdmin() {
		return true
	}

	if pub.OwnerID == nil || *pub.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "not the owner of this pub")

		return false
	}

	return true
}

func (h *PubHandler) pubResponse(pub *model.Pub) gin.H {
	return gin.H{
		"id":            pub.ID,
		"name":          pub.Name,
		"businessName":  pub.BusinessName,
		"vatNumber":     pub.VATNumber,
		"streetAddress": pub.StreetAddress,
		"city":          pub.City,
		"region":        pub.Region,
		"postalCode":    pub.PostalCode,
		"latitude":      pub.Latitude,
		"longitude":     pub.Longitude,
		"phone":         pub.Phone,
		"email":         pub.Email,
		"website":       pub.Website,
		"description":   pub.Description,
		"imageUrl":      pub.ImageURL,
		"logoUrl":       pub.LogoURL,
		"coverUrl":      pub.CoverURL,
		"facebookUrl":   pub.FacebookURL,
		"instagramUrl":  pub.InstagramURL,
		"rating":        pub.Rating,
		"active":        pub.Active,
		"openingHours":  pub.OpeningHours,
		"isOpenNow":     pub.OpeningHours.IsOpenAt(h.now()),
		"ownerId":       pub.OwnerID,
	}
}

func applyPubPatch(pub *model.Pub, req *pubPatchRequest) {
	if req.Name != nil {
		pub.Name = *req.Name
	}

	if req.BusinessName != nil {
		pub.BusinessName = *req.BusinessName
	}

	if req.VATNumber != nil {
		pub.VATNumber = *req.VATNumber
	}

	if req.StreetAddress != nil {
		pub.StreetAddress = *req.StreetAddress
	}

	if req.City != nil {
		pub.City = *req.City
	}

	if req.Region != nil {
		pub.Region = *req.Region
	}

	if req.PostalCode != nil {
		pub.PostalCode = *req.PostalCode
	}

	if req.Latitude != nil {
		pub.Latitude = req.Latitude
	}

	if req.Longitude != nil {
		pub.Longitude = req.Longitude
	}

	if req.Phone != nil {
		pub.Phone = *req.Phone
	}

	if req.Email != nil {
		pub.Email = *req.Email
	}

	if req.Website != nil {
		pub.Website = *req.Website
	}

	if req.Description != nil {
		pub.Description = *req.Description
	}

	if req.ImageURL != nil {
		pub.ImageURL = *req.ImageURL
	}

	if req.LogoURL != nil {
		pub.LogoURL = *req.LogoURL
	}

	if req.CoverURL != nil {
		pub.CoverURL = *req.CoverURL
	}

	if req.FacebookURL != nil {
		pub.FacebookURL = *req.FacebookURL
	}

	if req.InstagramURL != nil {
		pub.InstagramURL = *req.InstagramURL
	}

	if req.Active != nil {
		pub.Active = *req.Active
	}

	if req.OpeningHours != nil {
		pub.OpeningHours = *req.OpeningHours
	}
}
