package domain

import "time"

type Account struct {
	ID                AccountID `gorm:"primaryKey" db:"id" json:"id"`
	Username          string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_accounts_username" db:"username" json:"username"`
	Email             string    `gorm:"type:varchar(320);not null;uniqueIndex:ux_accounts_email" db:"email" json:"email"`
	PasswordAlgo      string    `gorm:"type:varchar(32);not null" db:"password_algo" json:"-"`
	PasswordHash      []byte    `gorm:"not null" db:"password_hash" json:"-"`
	PasswordSalt      []byte    `gorm:"not null" db:"password_salt" json:"-"`
	PasswordParams    []byte    `gorm:"not null" db:"password_params" json:"-"`
	PasswordVer       int       `gorm:"not null;default:1" db:"password_ver" json:"-"`
	VerifyCode        string    `gorm:"type:varchar(6);not null" db:"verify_code" json:"-"`
	VerifyCodeExpiry  time.Time `gorm:"not null" db:"verify_code_expiry" json:"-"`
	Verified          bool      `gorm:"not null;default:false" db:"verified" json:"verified"`
	AcceptingMessages bool      `gorm:"not null;default:true" db:"accepting_messages" json:"acceptingMessages"`
	CreatedAt         time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

// Accessors let the password service verify an account without importing domain.
func (a *Account) GetAlgo() string       { return a.PasswordAlgo }
func (a *Account) GetHash() []byte       { return a.PasswordHash }
func (a *Account) GetSalt() []byte       { return a.PasswordSalt }
func (a *Account) GetParamsJSON() []byte { return a.PasswordParams }
func (a *Account) GetPasswordVer() int   { return a.PasswordVer }

// CodeExpired reports whether the verification window closed at or before now.
func (a *Account) CodeExpired(now time.Time) bool {
	return !now.Before(a.VerifyCodeExpiry)
}
