package domain

import "time"

// RefreshToken is an opaque rotated session token. Only the peppered hash is
// stored; reuse of a rotated token revokes the whole family.
type RefreshToken struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	TokenHash   string     `json:"-"`
	JTI         string     `json:"-" gorm:"column:jti"`
	FamilyID    string     `json:"-"`
	RotatedFrom *int64     `json:"-"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"-"`
	RevokedAt   *time.Time `json:"-"`
	UserAgent   *string    `json:"-"`
	IP          *string    `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}
