package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what a validated access token carries
type TokenClaims struct {
	UserID    kernel.UserID
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

type jwtClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens; the identity provider shares the secret
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role string) (string, error) {
	now := s.now()
	claims := jwtClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken().WithCause(err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken().WithCause(errors.New("missing subject"))
	}

	out := &TokenClaims{
		UserID: kernel.NewUserID(claims.Subject),
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
