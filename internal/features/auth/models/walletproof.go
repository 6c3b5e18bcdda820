package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WalletProofRequest carries a signed wallet-ownership proof.
// @Description Wallet ownership proof for login
type WalletProofRequest struct {
	Wallet    string `json:"wallet" binding:"required" example:"alice.scribe"`                              // human-readable wallet identifier
	Address   string `json:"address" binding:"required" example:"EQD4FPq-PRD4YtG87wgL7AErgQwHUMFQ-JxyYw8jzBPhqjfH"` // raw on-chain address
	Network   string `json:"network" binding:"required" example:"mainnet"`
	Domain    string `json:"domain" binding:"required" example:"soulscribe.app"`
	Timestamp string `json:"timestamp" binding:"required" example:"1735689600"` // unix seconds, signed into the message
	Payload   string `json:"payload" binding:"required"`                        // server-issued state string
	Signature string `json:"signature" binding:"required"`                      // base64 ed25519 signature
	PublicKey string `json:"public_key" binding:"required"`                     // base64 ed25519 public key
}

// WalletProofState is the server-issued challenge a wallet must sign.
type WalletProofState struct {
	Wallet    string    `json:"wallet"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletProofRecord marks a wallet as having a verified ledger session.
type WalletProofRecord struct {
	UserID     int64     `json:"user_id"`
	Wallet     string    `json:"wallet"`
	Address    string    `json:"address"`
	Network    string    `json:"network"`
	VerifiedAt time.Time `json:"verified_at"`
}

// Claims is the JWT payload issued after a verified login.
type Claims struct {
	UserID int64  `json:"user_id"`
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// LoginResponse is returned after a successful wallet login.
// @Description Login result with bearer token
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"user_id" example:"42"`
	Wallet  string `json:"wallet" example:"alice.scribe"`
	IsAdmin bool   `json:"is_admin" example:"false"`
}

// StateResponse returns the challenge to sign.
// @Description Challenge for wallet proof
type StateResponse struct {
	State string `json:"state"`
}

// StatusResponse reports whether the caller holds a valid session.
// @Description Authentication status
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Wallet        string `json:"wallet,omitempty"`
}
