package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserDataKey = "user_data"

	DefaultDuration  = 24 * time.Hour
	RememberDuration = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Signer issues and verifies HS256 tokens carrying a types.UserWithAuth.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) (*Signer, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 characters")
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

func (s *Signer) GenerateToken(data types.UserWithAuth, duration time.Duration) (string, time.Time, error) {
	if duration <= 0 {
		duration = DefaultDuration
	}
	now := s.now()
	exp := now.Add(duration)

	claims := jwt.MapClaims{
		"sub":       data.ID.String(),
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
		UserDataKey: data,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *Signer) ValidateToken(raw string) (*types.UserWithAuth, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims[UserDataKey] == nil {
		return nil, ErrInvalidToken
	}

	raw2, err := json.Marshal(claims[UserDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling user data: %w", err)
	}
	var user types.UserWithAuth
	if err := json.Unmarshal(raw2, &user); err != nil {
		return nil, fmt.Errorf("error unmarshalling user data: %w", err)
	}
	if err := validation.Validate(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &user, nil
}
