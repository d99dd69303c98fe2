package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnonymousEmail is stored for coupons won by players who gave no address.
const AnonymousEmail = "anonymous_player@outwit.agency"

var (
	ErrCouponNotFound = errors.New("storage: coupon not found")
	ErrCouponUsed     = errors.New("storage: coupon already used")
)

// Coupon is a discount code issued for a win.
type Coupon struct {
	ID          string
	Code        string
	UserEmail   string
	Score       int
	GeneratedAt time.Time
	Used        bool
	UsedAt      time.Time
}

// SaveCoupon stores a newly issued coupon. Empty ID, email and timestamp
// are filled in. Returns the stored record.
func (s *Store) SaveCoupon(c Coupon) (Coupon, error) {
	if c.Code == "" {
		return c, fmt.Errorf("storage: coupon code is empty")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.UserEmail == "" {
		c.UserEmail = AnonymousEmail
	}
	if c.GeneratedAt.IsZero() {
		c.GeneratedAt = time.Now()
	}
	c.GeneratedAt = c.GeneratedAt.UTC().Truncate(time.Second)
	c.Used = false

	_, err := s.db.Exec(
		`INSERT INTO coupons (id, code, user_email, score, generated_at, used)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		c.ID, c.Code, c.UserEmail, c.Score, formatTime(c.GeneratedAt),
	)
	if err != nil {
		return c, fmt.Errorf("storage: cannot save coupon: %w", err)
	}
	return c, nil
}

const couponColumns = "id, code, user_email, score, generated_at, used, used_at"

func scanCoupon(scan func(dest ...any) error) (Coupon, error) {
	var c Coupon
	var generatedAt, usedAt any
	if err := scan(&c.ID, &c.Code, &c.UserEmail, &c.Score, &generatedAt, &c.Used, &usedAt); err != nil {
		return c, err
	}
	c.GeneratedAt = scanTime(generatedAt)
	c.UsedAt = scanTime(usedAt)
	return c, nil
}

// Coupons lists issued coupons, newest first.
func (s *Store) Coupons(limit int) ([]Coupon, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT `+couponColumns+`
		 FROM coupons
		 ORDER BY generated_at DESC, code ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		c, err := scanCoupon(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return coupons, nil
}

// CouponByCode looks up a single coupon.
func (s *Store) CouponByCode(code string) (Coupon, error) {
	c, err := scanCoupon(s.db.QueryRow(
		`SELECT `+couponColumns+` FROM coupons WHERE code = ?`, code,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCouponNotFound
	}
	if err != nil {
		return c, fmt.Errorf("storage: cannot query coupon: %w", err)
	}
	return c, nil
}

// RedeemCoupon marks a coupon as used. A coupon can be redeemed once.
func (s *Store) RedeemCoupon(code string) (Coupon, error) {
	res, err := s.db.Exec(
		"UPDATE coupons SET used = 1, used_at = ? WHERE code = ? AND used = 0",
		formatTime(time.Now()), code,
	)
	if err != nil {
		return Coupon{}, fmt.Errorf("storage: cannot redeem coupon: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Coupon{}, fmt.Errorf("storage: cannot redeem coupon: %w", err)
	}

	c, err := s.CouponByCode(code)
	if err != nil {
		return c, err
	}
	if n == 0 {
		return c, ErrCouponUsed
	}
	return c, nil
}
