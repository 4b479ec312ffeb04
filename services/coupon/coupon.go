// File: kts/services/coupon/coupon.go
package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	couponRepo "kts/database/repository/coupon"
	"kts/models"

	"github.com/google/uuid"
)

// CouponService validates and redeems discount coupons and exposes admin CRUD.
type CouponService interface {
	// Validate checks a raw code. An empty (or all-whitespace) code means
	// "no coupon" and returns (nil, nil). Validation has no side effects.
	Validate(code string) (*models.Coupon, error)
	// Redeem consumes one use after a booking that applied the coupon was
	// persisted. The increment is atomic against the usage cap.
	Redeem(code string) error

	Create(c *models.Coupon) error
	Update(c *models.Coupon) error
	Delete(id string) error
	GetAll() ([]models.Coupon, error)
}

// DefaultCouponService is the production implementation.
type DefaultCouponService struct {
	Repo couponRepo.CouponRepository
	Now  func() time.Time // nil = time.Now
}

func (s *DefaultCouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Validate implements the coupon validity rule: the coupon must exist, be
// active, not be past valid_until, and have uses remaining.
func (s *DefaultCouponService) Validate(code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	c, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("coupon lookup failed: %w", err)
	}
	if c == nil || !c.IsActive || c.ValidUntil.Before(s.now()) {
		return nil, InvalidCouponError{Code: code}
	}
	// Past this point only the usage cap can make the coupon unusable.
	if !c.Usable(s.now()) {
		return nil, LimitReachedError{Code: code}
	}
	return c, nil
}

// Redeem increments the usage counter once. A cap race lost to a concurrent
// booking surfaces as LimitReachedError.
func (s *DefaultCouponService) Redeem(code string) error {
	if err := s.Repo.Redeem(code); err != nil {
		if errors.Is(err, couponRepo.ErrExhausted) {
			return LimitReachedError{Code: code}
		}
		return err
	}
	return nil
}

// Create validates bounds and stores a new coupon.
func (s *DefaultCouponService) Create(c *models.Coupon) error {
	if err := checkBounds(c); err != nil {
		return err
	}
	c.ID = uuid.New().String()
	c.CurrentUses = 0
	return s.Repo.Create(c)
}

// Update validates bounds and persists changes to an existing coupon.
func (s *DefaultCouponService) Update(c *models.Coupon) error {
	if err := checkBounds(c); err != nil {
		return err
	}
	return s.Repo.Update(c)
}

// Delete removes a coupon.
func (s *DefaultCouponService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// GetAll lists every coupon.
func (s *DefaultCouponService) GetAll() ([]models.Coupon, error) {
	return s.Repo.GetAll()
}

func checkBounds(c *models.Coupon) error {
	if strings.TrimSpace(c.Code) == "" {
		return errors.New("coupon code is required")
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return errors.New("discount percent must be between 0 and 100")
	}
	if c.MaxUses != nil && *c.MaxUses < 0 {
		return errors.New("max uses must not be negative")
	}
	return nil
}

// DiscountedPrice applies a coupon to a service price. A nil coupon leaves
// the price unchanged.
func DiscountedPrice(price float64, c *models.Coupon) float64 {
	if c == nil {
		return price
	}
	return price * (1 - c.DiscountPercent/100)
}
