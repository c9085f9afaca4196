package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
)

// Claims is the access-token payload. Role is the role id the user held
// at mint time; role changes do not retroactively invalidate tokens
// inside the expiry window.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Usercode string `json:"usercode"`
	Role     int64  `json:"role"`
	jwt.RegisteredClaims
}

// MintToken signs an HS256 access token for the user.
func MintToken(user *models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(ttl)
	claims := Claims{
		UserID:   user.UserID,
		Usercode: user.Usercode,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   user.Usercode,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
