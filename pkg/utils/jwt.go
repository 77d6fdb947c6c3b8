package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
	ContextKeyName   = "name"
)

type TokenUser struct {
	UserID string
	Name   string
	Role   string
}

func CreateJWTToken(userID string, userName string, role string, jwtSecretKey string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["role"] = role
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken validates signature, signing method and expiry.
func ParseJWTToken(tokenString string, jwtSecretKey string) (TokenUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return TokenUser{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenUser{}, errors.New("invalid token claims")
	}

	userID, _ := claims["userID"].(string)
	if userID == "" {
		return TokenUser{}, errors.New("token has no subject")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return TokenUser{UserID: userID, Name: name, Role: role}, nil
}

// ExtractTokenUser reads the identity stored by the auth middleware. The zero
// value is returned for anonymous requests.
func ExtractTokenUser(c echo.Context) TokenUser {
	userID, _ := c.Get(ContextKeyUserID).(string)
	role, _ := c.Get(ContextKeyRole).(string)
	name, _ := c.Get(ContextKeyName).(string)
	return TokenUser{UserID: userID, Name: name, Role: role}
}
