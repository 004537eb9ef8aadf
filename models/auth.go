// models/auth.go
package models

// Response is the standard envelope returned by every handler
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthUser is the user slice returned alongside a token
type AuthUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsPartner    bool   `json:"isPartner"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// LoginResponse carries the signed token and the authenticated user
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
