package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OTPService issues and checks one-time codes. An account counts as verified
// once it has no outstanding code.
type OTPService struct {
	otps     repository.OTPRepository
	accounts repository.AccountRepository
	notifier notification.Notifier
	ttl      time.Duration
	log      *zap.Logger

	now      func() time.Time
	generate func() (int, error)
}

// NewOTPService creates a new OTPService
func NewOTPService(
	otps repository.OTPRepository,
	accounts repository.AccountRepository,
	notifier notification.Notifier,
	ttl time.Duration,
	log *zap.Logger,
) *OTPService {
	return &OTPService{
		otps:     otps,
		accounts: accounts,
		notifier: notifier,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		generate: utils.GenerateOTPCode,
	}
}

// Issue replaces any code held by the account with a fresh one and sends it.
func (s *OTPService) Issue(ctx context.Context, userID uuid.UUID) error {
	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return apierrors.Internal("failed to find account", err)
	}
	return s.issue(ctx, account)
}

// IssueByEmail is Issue for an account looked up by email
func (s *OTPService) IssueByEmail(ctx context.Context, email string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issue(ctx, account)
}

// Verify consumes the account's code. The expiry check wins over a code
// mismatch.
func (s *OTPService) Verify(ctx context.Context, userID uuid.UUID, code int) error {
	otp, err := s.otps.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPNotFound
		}
		return apierrors.Internal("failed to find OTP", err)
	}

	if !s.now().Before(otp.ExpireAt) {
		return ErrOTPExpired
	}
	if otp.OTPCode != code {
		return ErrOTPMismatch
	}

	if err := s.otps.Consume(ctx, otp.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPNotFound
		}
		return apierrors.Internal("failed to consume OTP", err)
	}

	s.log.Info("account verified", zap.String("account_id", userID.String()))
	return nil
}

// VerifyByEmail is Verify for an account looked up by email
func (s *OTPService) VerifyByEmail(ctx context.Context, email string, code int) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.Verify(ctx, account.ID, code)
}

// IsVerified reports whether the account has no outstanding code.
func (s *OTPService) IsVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := s.otps.FindByUserID(ctx, userID)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, apierrors.Internal("failed to find OTP", err)
}

func (s *OTPService) issue(ctx context.Context, account *models.Account) error {
	code, err := s.generate()
	if err != nil {
		return apierrors.Internal("failed to generate OTP", err)
	}

	otp := &models.OTP{
		UserID:   account.ID,
		OTPCode:  code,
		ExpireAt: s.now().Add(s.ttl),
	}
	if err := s.otps.Replace(ctx, otp); err != nil {
		return apierrors.Internal("failed to save OTP", err)
	}

	minutes := int((s.ttl + time.Minute - 1) / time.Minute)
	notify(ctx, s.notifier, s.log, notification.OTPMessage(account.Email, account.Name, code, minutes))
	return nil
}

func (s *OTPService) findByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, apierrors.Internal("failed to find account", err)
	}
	return account, nil
}
