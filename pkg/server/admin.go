package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type moderationRepository interface {
	AddReview(ctx context.Context, review model.Review) (*model.Review, error)
	ListReviewsByStatus(ctx context.Context, status model.ReviewStatus, limit int) ([]*model.Review, error)
	SetReviewStatus(ctx context.Context, reviewID uint, status model.ReviewStatus) error

	AddReport(ctx context.Context, report model.Report) (*model.Report, error)
	ListReportsByStatus(ctx context.Context, status model.ReportStatus, limit int) ([]*model.Report, error)
	SetReportStatus(ctx context.Context, reportID uint, status model.ReportStatus) error

	AddPublicanRequest(ctx context.Context, request model.PublicanRequest) (*model.PublicanRequest, error)
	ListPublicanRequests(ctx context.Context, status model.RequestStatus, limit int) ([]*model.PublicanRequest, error)
	ApprovePublicanRequest(ctx context.Context, requestID uint) (*model.Pub, error)
	RejectPublicanRequest(ctx context.Context, requestID uint) error

	ListUsers(ctx context.Context, limit int) ([]*model.User, error)
	DeleteUser(ctx context.Context, userID uint) error
	GetAdminStats(ctx context.Context) (*repository.AdminStats, error)
}

// CommunityHandler takes submissions from signed-in users: reviews, content
// reports and requests to become a publican. Everything lands in a pending
// state for the back office.
type CommunityHandler struct {
	repo   moderationRepository
	logger *zap.Logger
}

func NewCommunityHandler(repo moderationRepository, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{repo: repo, logger: logger}
}

type reviewRequest struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   uint   `json:"itemId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Body     string `json:"body" binding:"required"`
}

func (h *CommunityHandler) SubmitReview(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	itemType, err := model.ParseItemType(req.ItemType)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	review, err := h.repo.AddReview(c.Request.Context(), model.Review{
		UserID:   user.ID,
		ItemType: itemType,
		ItemID:   req.ItemID,
		Rating:   req.Rating,
		Body:     req.Body,
		Status:   model.ReviewPending,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, review)
}

type reportRequest struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   uint   `json:"itemId" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

func (h *CommunityHandler) SubmitReport(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	itemType, err := model.ParseItemType(req.ItemType)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	report, err := h.repo.AddReport(c.Request.Context(), model.Report{
		ReporterID: user.ID,
		ItemType:   itemType,
		ItemID:     req.ItemID,
		Reason:     req.Reason,
		Status:     model.ReportOpen,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, report)
}

type publicanRequestRequest struct {
	PubName       string `json:"pubName" binding:"required"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city" binding:"required"`
	Region        string `json:"region"`
	Phone         string `json:"phone"`
	VATNumber     string `json:"vatNumber" binding:"required,min=11"`
	BusinessName  string `json:"businessName" binding:"required"`
}

func (h *CommunityHandler) SubmitPublicanRequest(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req publicanRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	request, err := h.repo.AddPublicanRequest(c.Request.Context(), model.PublicanRequest{
		UserID:        user.ID,
		PubName:       req.PubName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		Region:        req.Region,
		Phone:         req.Phone,
		VATNumber:     req.VATNumber,
		BusinessName:  req.BusinessName,
		Status:        model.RequestPending,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, request)
}

// AdminHandler is the moderation back office. Every route behind it sits
// behind auth.RequireAdmin.
type AdminHandler struct {
	repo   moderationRepository
	logger *zap.Logger
}

func NewAdminHandler(repo moderationRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{repo: repo, logger: logger}
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}

	return limit
}

// ListReviews defaults to the pending queue; ?status= selects another slice.
func (h *AdminHandler) ListReviews(c *gin.Context) {
	status := model.ReviewPending

	switch value := c.Query("status"); value {
	case "", string(model.ReviewPending):
	case string(model.ReviewApproved), string(model.ReviewRejected):
		status = model.ReviewStatus(value)
	default:
		respondError(c, http.StatusBadRequest, "unknown review status")

		return
	}

	reviews, err := h.repo.ListReviewsByStatus(c.Request.Context(), status, queryLimit(c))
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *AdminHandler) ApproveReview(c *gin.Context) {
	h.setReviewStatus(c, model.ReviewApproved)
}

func (h *AdminHandler) RejectReview(c *gin.Context) {
	h.setReviewStatus(c, model.ReviewRejected)
}

func (h *AdminHandler) setReviewStatus(c *gin.Context, status model.ReviewStatus) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.SetReviewStatus(c.Request.Context(), reviewID, status); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"id": reviewID, "status": status})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	status := model.ReportOpen

	switch value := c.Query("status"); value {
	case "", string(model.ReportOpen):
	case string(model.ReportResolved), string(model.ReportDismissed):
		status = model.ReportStatus(value)
	default:
		respondError(c, http.StatusBadRequest, "unknown report status")

		return
	}

	reports, err := h.repo.ListReportsByStatus(c.Request.Context(), status, queryLimit(c))
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	h.setReportStatus(c, model.ReportResolved)
}

func (h *AdminHandler) DismissReport(c *gin.Context) {
	h.setReportStatus(c, model.ReportDismissed)
}

func (h *AdminHandler) setReportStatus(c *gin.Context, status model.ReportStatus) {
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.SetReportStatus(c.Request.Context(), reportID, status); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"id": reportID, "status": status})
}

func (h *AdminHandler) PendingPublicanRequests(c *gin.Context) {
	requests, err := h.repo.ListPublicanRequests(c.Request.Context(), model.RequestPending, queryLimit(c))
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, requests)
}

// ApprovePublicanRequest grants the pub_owner role and creates the pub in one
// transaction; a request that was already decided answers 409.
func (h *AdminHandler) ApprovePublicanRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	pub, err := h.repo.ApprovePublicanRequest(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestAlreadyDecided) {
			respondError(c, http.StatusConflict, err.Error())

			return
		}

		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, pub)
}

func (h *AdminHandler) RejectPublicanRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.RejectPublicanRequest(c.Request.Context(), requestID); err != nil {
		if errors.Is(err, repository.ErrRequestAlreadyDecided) {
			respondError(c, http.StatusConflict, err.Error())

			return
		}

		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"id": requestID, "status": model.RequestRejected})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context(), queryLimit(c))
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	response := make([]gin.H, 0, len(users))
	for _, user := range users {
		response = append(response, userResponse(user))
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller, _ := auth.CurrentUser(c)
	if caller.ID == userID {
		respondError(c, http.StatusBadRequest, "cannot delete your own account")

		return
	}

	if err := h.repo.DeleteUser(c.Request.Context(), userID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.repo.GetAdminStats(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, stats)
}
