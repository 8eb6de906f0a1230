package usecase

import (
	"errors"
	"fmt"
	"time"

	authdomain "interest-registry/internal/auth/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase validates operator bearer tokens
type AuthUsecase interface {
	ValidateToken(tokenString string) (*authdomain.Operator, error)
	IssueToken(operatorID, role string, ttl time.Duration) (string, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	secret []byte
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(secret string) AuthUsecase {
	return &authUsecase{
		secret: []byte(secret),
	}
}

// IssueToken signs an HS256 token for an operator
func (u *authUsecase) IssueToken(operatorID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  operatorID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.secret)
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Operator, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return u.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	operatorID, ok := claims["sub"].(string)
	if !ok || operatorID == "" {
		return nil, errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)

	return &authdomain.Operator{
		ID:   operatorID,
		Role: role,
	}, nil
}
