package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/database"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/gorm"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err == nil {
		account := user.Account()
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ngo, err := r.FindNGOByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account := ngo.Account()
	return &account, nil
}

func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, _, err := r.PasswordHash(ctx, email)
	return account, err
}

func (r *GormAccountRepository) PasswordHash(ctx context.Context, email string) (*models.Account, string, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		account := user.Account()
		return &account, user.PasswordHash, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&ngo).Error; err != nil {
		return nil, "", err
	}
	account := ngo.Account()
	return &account, ngo.PasswordHash, nil
}

func (r *GormAccountRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormAccountRepository) CreateNGO(ctx context.Context, ngo *models.NGO) error {
	return r.db.WithContext(ctx).Create(ngo).Error
}

func (r *GormAccountRepository) FindNGOByID(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).First(&ngo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *GormAccountRepository) UpdateNGO(ctx context.Context, ngo *models.NGO) error {
	return r.db.WithContext(ctx).Save(ngo).Error
}

func (r *GormAccountRepository) ListNGOs(ctx context.Context, approved *bool) ([]models.NGO, error) {
	var ngos []models.NGO
	query := r.db.WithContext(ctx).Scopes(database.NewestFirst(""))
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}
	if err := query.Find(&ngos).Error; err != nil {
		return nil, err
	}
	return ngos, nil
}

func (r *GormAccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var users, ngos int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&users).Error; err != nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).Model(&models.NGO{}).Where("email = ?", email).Count(&ngos).Error; err != nil {
		return false, err
	}
	return users+ngos > 0, nil
}
