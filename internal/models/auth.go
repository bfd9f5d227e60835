package models

import "github.com/golang-jwt/jwt/v5"

// Claims carried by admin bearer tokens.
type Claims struct {
	Subject string `json:"sub_name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
