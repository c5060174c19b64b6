package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an application user. Secret material is never stored
// raw: PasswordHash is a bcrypt hash, ActivationToken and
// ResetPasswordToken hold SHA-256 hashes of the tokens sent out of band.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:64;not null" json:"firstName"`
	LastName     string `gorm:"size:64;not null" json:"lastName"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"`
	Active       bool   `gorm:"not null;default:false" json:"-"`

	ActivationToken      *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordToken   *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// FullName is used for denormalized display fields and email greetings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before the change are no longer valid.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}
