package domain

import "time"

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

type ManagerStatus string

const (
	ManagerPending  ManagerStatus = "pending"
	ManagerApproved ManagerStatus = "approved"
	ManagerRejected ManagerStatus = "rejected"
	ManagerBlocked  ManagerStatus = "blocked"
)

type User struct {
	ID                  int64         `json:"id"`
	Email               string        `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash        string        `json:"-"`
	Role                UserRole      `json:"role"`
	Name                string        `json:"name"`
	Phone               string        `json:"phone,omitempty"`
	ManagerStatus       ManagerStatus `json:"manager_status,omitempty"`
	IsBanned            bool          `json:"is_banned"`
	BannedAt            *time.Time    `json:"banned_at,omitempty"`
	BanReason           string        `json:"-"`
	FailedLoginAttempts int           `json:"-"`
	LockedUntil         *time.Time    `json:"-"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// ManagerProfile holds the company details a manager submits on
// registration. Created together with the user, reviewed by an admin.
type ManagerProfile struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	CompanyName     string     `json:"company_name"`
	ContactPerson   string     `json:"contact_person"`
	ContactPosition string     `json:"contact_position,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	RejectedReason  string     `json:"rejected_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
