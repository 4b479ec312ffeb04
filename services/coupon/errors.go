package coupon

// InvalidCouponError signals a coupon that does not exist, is inactive, or
// has expired. The distinction from LimitReachedError is user messaging only.
type InvalidCouponError struct {
	Code string
}

func (e InvalidCouponError) Error() string {
	return "coupon is invalid or expired: " + e.Code
}

// LimitReachedError signals a coupon whose usage cap is exhausted.
type LimitReachedError struct {
	Code string
}

func (e LimitReachedError) Error() string {
	return "coupon usage limit reached: " + e.Code
}
