package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUserByUUID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("uuid = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) AddUser(ctx context.Context, user model.User) (*model.User, error) {
	user.UUID = uuid.New()

	if user.Email != nil {
		lowered := strings.ToLower(*user.Email)
		user.Email = &lowered
	}

	if len(user.Roles) == 0 {
		user.Roles = model.RoleSet{model.RoleCustomer}
	}

	if user.ActiveRole == "" {
		user.ActiveRole = user.Roles[0]
	}

	if result := r.DB.WithContext(ctx).Create(&user); result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *Repository) GrantRole(ctx context.Context, userID uint, role model.Role) error {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Roles = user.Roles.Add(role)

	return r.DB.WithContext(ctx).Model(user).Update("roles", user.Roles).Error
}

func (r *Repository) SetActiveRole(ctx context.Context, userID uint, role model.Role) error {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.Roles.Has(role) {
		return model.ErrUnknownRole
	}

	return r.DB.WithContext(ctx).Model(user).Update("active_role", role).Error
}

func (r *Repository) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	var users []*model.User

	result := r.DB.WithContext(ctx).Order("created_at desc").Limit(clampLimit(limit)).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// DeleteUser is the destructive admin exception; normal flows never remove
// accounts.
func (r *Repository) DeleteUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Delete(&model.User{}, userID).Error
}

func (r *Repository) FindOAuthAccount(ctx context.Context, provider, subject string) (*model.OAuthAccount, error) {
	var account model.OAuthAccount

	result := r.DB.WithContext(ctx).Where("provider = ? AND subject = ?", provider, subject).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &account, nil
}

func (r *Repository) LinkOAuthAccount(ctx context.Context, account model.OAuthAccount) (*model.OAuthAccount, error) {
	if result := r.DB.WithContext(ctx).Create(&account); result.Error != nil {
		return nil, result.Error
	}

	return &account, nil
}

// UpdateOAuthTokens stores the latest access and refresh tokens; called on
// every OAuth login.
func (r *Repository) UpdateOAuthTokens(ctx context.Context, accountID uint, accessToken string, refreshToken *string) error {
	updates := map[string]interface{}{"access_token": accessToken}
	if refreshToken != nil {
		updates["refresh_token"] = *refreshToken
	}

	return r.DB.WithContext(ctx).Model(&model.OAuthAccount{}).Where("id = ?", accountID).Updates(updates).Error
}
