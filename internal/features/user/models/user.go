package models

import "time"

// User is a wallet-authenticated account. Created on first successful
// wallet login and immutable afterwards except for the admin flag.
type User struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username      string    `json:"username" gorm:"not null"`
	Wallet        string    `json:"wallet" gorm:"uniqueIndex;not null"` // wallet identifier, e.g. alice.scribe
	WalletAddress string    `json:"wallet_address" gorm:"not null"`     // raw on-chain address
	IsAdmin       bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the public view of a user.
// @Description Public user information
type UserResponse struct {
	ID            int64     `json:"id" example:"42"`
	Username      string    `json:"username" example:"alice"`
	Wallet        string    `json:"wallet" example:"alice.scribe"`
	WalletAddress string    `json:"wallet_address" example:"EQD4FPq-PRD4YtG87wgL7AErgQwHUMFQ-JxyYw8jzBPhqjfH"`
	IsAdmin       bool      `json:"is_admin" example:"false"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToResponse converts the stored user to its public view.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Wallet:        u.Wallet,
		WalletAddress: u.WalletAddress,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
	}
}

// ErrorResponse is the uniform error payload.
// @Description API error payload
type ErrorResponse struct {
	Error string `json:"error" example:"User not found"`
}
