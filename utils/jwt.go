package utils

import (
	"errors"
	"time"

	"formu.link/configs"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL API tokenlarının geçerlilik süresi.
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("geçersiz veya süresi dolmuş token")

// APIClaims API tokenının taşıdığı kimlik bilgileri.
type APIClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken kullanıcı için imzalı bir API tokenı üretir.
func GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := APIClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "formu.link",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret()))
}

// ParseToken tokenı doğrular ve içindeki kimlik bilgilerini döndürür.
func ParseToken(tokenString string) (*APIClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &APIClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(configs.JWTSecret()), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*APIClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
