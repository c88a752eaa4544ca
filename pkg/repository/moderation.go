package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var (
	ErrReviewNotFound          = errors.New("review not found")
	ErrReportNotFound          = errors.New("report not found")
	ErrPublicanRequestNotFound = errors.New("publican request not found")
	ErrRequestAlreadyDecided   = errors.New("publican request already decided")
)

func (r *Repository) AddReview(ctx context.Context, review model.Review) (*model.Review, error) {
	if result := r.DB.WithContext(ctx).Create(&review); result.Error != nil {
		return nil, result.Error
	}

	return &review, nil
}

func (r *Repository) ListReviewsByStatus(ctx context.Context, status model.ReviewStatus, limit int) ([]*model.Review, error) {
	var reviews []*model.Review

	result := r.DB.WithContext(ctx).
		Joins("User").
		Where("reviews.status = ?", status).
		Order("reviews.created_at").
		Limit(clampLimit(limit)).
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

// ListApprovedReviewsForItem is the public read path; pending and rejected
// reviews never leave moderation.
func (r *Repository) ListApprovedReviewsForItem(ctx context.Context, itemType model.ItemType, itemID uint) ([]*model.Review, error) {
	var reviews []*model.Review

	result := r.DB.WithContext(ctx).
		Joins("User").
		Where("reviews.item_type = ? AND reviews.item_id = ? AND reviews.status = ?", itemType, itemID, model.ReviewApproved).
		Order("reviews.created_at desc").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

func (r *Repository) SetReviewStatus(ctx context.Context, reviewID uint, status model.ReviewStatus) error {
	result := r.DB.WithContext(ctx).Model(&model.Review{}).Where("id = ?", reviewID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *Repository) AddReport(ctx context.Context, report model.Report) (*model.Report, error) {
	if result := r.DB.WithContext(ctx).Create(&report); result.Error != nil {
		return nil, result.Error
	}

	return &report, nil
}

func (r *Repository) ListReportsByStatus(ctx context.Context, status model.ReportStatus, limit int) ([]*model.Report, error) {
	var reports []*model.Report

	result := r.DB.WithContext(ctx).
		Joins("Reporter").
		Where("reports.status = ?", status).
		Order("reports.created_at").
		Limit(clampLimit(limit)).
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

func (r *Repository) SetReportStatus(ctx context.Context, reportID uint, status model.ReportStatus) error {
	result := r.DB.WithContext(ctx).Model(&model.Report{}).Where("id = ?", reportID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}

	return nil
}

func (r *Repository) AddPublicanRequest(ctx context.Context, request model.PublicanRequest) (*model.PublicanRequest, error) {
	if result := r.DB.WithContext(ctx).Create(&request); result.Error != nil {
		return nil, result.Error
	}

	return &request, nil
}

func (r *Repository) ListPublicanRequests(ctx context.Context, status model.RequestStatus, limit int) ([]*model.PublicanRequest, error) {
	var requests []*model.PublicanRequest

	result := r.DB.WithContext(ctx).
		Joins("User").
		Where("publican_requests.status = ?", status).
		Order("publican_requests.created_at").
		Limit(clampLimit(limit)).
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (r *Repository) GetPublicanRequestByID(ctx context.Context, id uint) (*model.PublicanRequest, error) {
	var request model.PublicanRequest

	result := r.DB.WithContext(ctx).First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPublicanRequestNotFound
		}

		return nil, result.Error
	}

	return &request, nil
}

// ApprovePublicanRequest grants the role and creates the pub in one
// transaction; an approved request never exists without its pub.
func (r *Repository) ApprovePublicanRequest(ctx context.Context, requestID uint) (*model.Pub, error) {
	var pub *model.Pub

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request model.PublicanRequest

		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPublicanRequestNotFound
			}

			return err
		}

		if request.Status != model.RequestPending {
			return ErrRequestAlreadyDecided
		}

		var user model.User

		if err := tx.First(&user, request.UserID).Error; err != nil {
			return err
		}

		user.Roles = user.Roles.Add(model.RolePubOwner)

		if err := tx.Model(&user).Update("roles", user.Roles).Error; err != nil {
			return err
		}

		created := model.Pub{
			Name:          request.PubName,
			StreetAddress: request.StreetAddress,
			City:          request.City,
			Region:        request.Region,
			Phone:         request.Phone,
			VATNumber:     request.VATNumber,
			BusinessName:  request.BusinessName,
			Active:        true,
			OwnerID:       &request.UserID,
		}

		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		pub = &created

		return tx.Model(&request).Update("status", model.RequestApproved).Error
	})
	if err != nil {
		return nil, err
	}

	return pub, nil
}

func (r *Repository) RejectPublicanRequest(ctx context.Context, requestID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request model.PublicanRequest

		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPublicanRequestNotFound
			}

			return err
		}

		if request.Status != model.RequestPending {
			return ErrRequestAlreadyDecided
		}

		return tx.Model(&request).Update("status", model.RequestRejected).Error
	})
}

// AdminStats is the back-office dashboard summary.
type AdminStats struct {
	Users           int64 `json:"users"`
	Pubs            int64 `json:"pubs"`
	Breweries       int64 `json:"breweries"`
	Beers           int64 `json:"beers"`
	PendingReviews  int64 `json:"pendingReviews"`
	OpenReports     int64 `json:"openReports"`
	PendingRequests int64 `json:"pendingRequests"`
}

func (r *Repository) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := AdminStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		where []interface{}
	}{
		{&stats.Users, &model.User{}, nil},
		{&stats.Pubs, &model.Pub{}, nil},
		{&stats.Breweries, &model.Brewery{}, nil},
		{&stats.Beers, &model.Beer{}, nil},
		{&stats.PendingReviews, &model.Review{}, []interface{}{"status = ?", model.ReviewPending}},
		{&stats.OpenReports, &model.Report{}, []interface{}{"status = ?", model.ReportOpen}},
		{&stats.PendingRequests, &model.PublicanRequest{}, []interface{}{"status = ?", model.RequestPending}},
	}

	for _, count := range counts {
		tx := r.DB.WithContext(ctx).Model(count.model)
		if count.where != nil {
			tx = tx.Where(count.where[0], count.where[1:]...)
		}

		if result := tx.Count(count.dest); result.Error != nil {
			return nil, result.Error
		}
	}

	return &stats, nil
}
