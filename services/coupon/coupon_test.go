package coupon

import (
	"testing"
	"time"

	couponRepo "kts/database/repository/coupon"
	"kts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCouponRepo struct {
	coupons    map[string]*models.Coupon
	redeems    int
	exhausted  bool
	lastRedeem string
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: map[string]*models.Coupon{}}
}

func (f *fakeCouponRepo) Create(c *models.Coupon) error {
	f.coupons[c.Code] = c
	return nil
}

func (f *fakeCouponRepo) Update(c *models.Coupon) error {
	f.coupons[c.Code] = c
	return nil
}

func (f *fakeCouponRepo) Delete(id string) error { return nil }

func (f *fakeCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	return f.coupons[code], nil
}

func (f *fakeCouponRepo) GetAll() ([]models.Coupon, error) { return nil, nil }

func (f *fakeCouponRepo) Redeem(code string) error {
	if f.exhausted {
		return couponRepo.ErrExhausted
	}
	f.redeems++
	f.lastRedeem = code
	if c, ok := f.coupons[code]; ok {
		c.CurrentUses++
	}
	return nil
}

func int64p(v int64) *int64 { return &v }

func TestValidateMatrix(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		coupon  *models.Coupon
		code    string
		wantErr error
		wantOK  bool
	}{
		{
			name:   "valid active coupon",
			coupon: &models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true, ValidUntil: future},
			code:   "SAVE20",
			wantOK: true,
		},
		{
			name:   "code is upper-cased and trimmed before lookup",
			coupon: &models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true, ValidUntil: future},
			code:   "  save20 ",
			wantOK: true,
		},
		{
			name:    "unknown code",
			code:    "NOPE",
			wantErr: InvalidCouponError{Code: "NOPE"},
		},
		{
			name:    "inactive coupon",
			coupon:  &models.Coupon{Code: "OFF", DiscountPercent: 10, IsActive: false, ValidUntil: future},
			code:    "OFF",
			wantErr: InvalidCouponError{Code: "OFF"},
		},
		{
			name:    "expired coupon",
			coupon:  &models.Coupon{Code: "OLD", DiscountPercent: 10, IsActive: true, ValidUntil: past},
			code:    "OLD",
			wantErr: InvalidCouponError{Code: "OLD"},
		},
		{
			name: "usage cap reached",
			coupon: &models.Coupon{
				Code: "FULL", DiscountPercent: 10, IsActive: true, ValidUntil: future,
				MaxUses: int64p(5), CurrentUses: 5,
			},
			code:    "FULL",
			wantErr: LimitReachedError{Code: "FULL"},
		},
		{
			name: "one use left",
			coupon: &models.Coupon{
				Code: "LAST", DiscountPercent: 10, IsActive: true, ValidUntil: future,
				MaxUses: int64p(5), CurrentUses: 4,
			},
			code:   "LAST",
			wantOK: true,
		},
		{
			name: "nil max uses means unlimited",
			coupon: &models.Coupon{
				Code: "FREE", DiscountPercent: 10, IsActive: true, ValidUntil: future,
				CurrentUses: 1000,
			},
			code:   "FREE",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCouponRepo()
			if tt.coupon != nil {
				repo.coupons[tt.coupon.Code] = tt.coupon
			}
			svc := &DefaultCouponService{Repo: repo, Now: func() time.Time { return now }}

			got, err := svc.Validate(tt.code)
			if tt.wantOK {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.coupon.Code, got.Code)
			} else {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			}
		})
	}
}

func TestValidateEmptyCodeMeansNoCoupon(t *testing.T) {
	svc := &DefaultCouponService{Repo: newFakeCouponRepo()}

	for _, code := range []string{"", "   ", "\t"} {
		got, err := svc.Validate(code)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestRedeemMapsExhaustion(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.exhausted = true
	svc := &DefaultCouponService{Repo: repo}

	err := svc.Redeem("FULL")
	assert.Equal(t, LimitReachedError{Code: "FULL"}, err)
	assert.Zero(t, repo.redeems)
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		coupon *models.Coupon
		want   float64
	}{
		{"nil coupon leaves price unchanged", 100, nil, 100},
		{"20 percent off", 100, &models.Coupon{DiscountPercent: 20}, 80},
		{"zero percent", 100, &models.Coupon{DiscountPercent: 0}, 100},
		{"full discount", 250, &models.Coupon{DiscountPercent: 100}, 0},
		{"fractional price", 99.99, &models.Coupon{DiscountPercent: 50}, 49.995},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DiscountedPrice(tt.price, tt.coupon), 1e-9)
		})
	}
}

func TestCreateBounds(t *testing.T) {
	svc := &DefaultCouponService{Repo: newFakeCouponRepo()}

	assert.Error(t, svc.Create(&models.Coupon{Code: "", DiscountPercent: 10}))
	assert.Error(t, svc.Create(&models.Coupon{Code: "X", DiscountPercent: -1}))
	assert.Error(t, svc.Create(&models.Coupon{Code: "X", DiscountPercent: 101}))
	assert.Error(t, svc.Create(&models.Coupon{Code: "X", DiscountPercent: 10, MaxUses: int64p(-1)}))

	c := &models.Coupon{Code: "OK10", DiscountPercent: 10, CurrentUses: 7}
	require.NoError(t, svc.Create(c))
	assert.NotEmpty(t, c.ID)
	assert.Zero(t, c.CurrentUses, "new coupons start with zero uses")
}

func TestCouponUsable(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	c := &models.Coupon{IsActive: true, ValidUntil: future, MaxUses: int64p(2), CurrentUses: 1}
	assert.True(t, c.Usable(now))

	c.CurrentUses = 2
	assert.False(t, c.Usable(now), "cap reached")

	assert.False(t, (&models.Coupon{IsActive: true, ValidUntil: now.Add(-time.Minute)}).Usable(now), "expired")
	assert.False(t, (&models.Coupon{IsActive: false, ValidUntil: future}).Usable(now), "inactive")
}
