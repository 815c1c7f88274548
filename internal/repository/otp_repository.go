package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/gorm"
)

// GormOTPRepository is a GORM implementation of OTPRepository
type GormOTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &GormOTPRepository{db: db}
}

func (r *GormOTPRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.OTP, error) {
	var otp models.OTP
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *GormOTPRepository) Replace(ctx context.Context, otp *models.OTP) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", otp.UserID).Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

// Consume flags the code as used and deletes it in one transaction. Only the
// first of two concurrent calls succeeds; the other gets gorm.ErrRecordNotFound.
func (r *GormOTPRepository) Consume(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OTP{}).Where("id = ? AND status = ?", id, false).Update("status", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).Delete(&models.OTP{}).Error
	})
}
