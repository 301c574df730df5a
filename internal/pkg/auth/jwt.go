package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	AdminTokenExp  time.Duration
	ResetSecretKey string
	ResetTokenExp  time.Duration
	TokenIssuer    string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// Claims is the principal attached to each request: an account id plus a role.
// The admin principal carries id 0, it has no backing record.
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed access token for the given principal.
// Admin tokens live longer than student/faculty ones.
func (s *JWTService) GenerateToken(userID int64, role string) (string, error) {
	exp := s.config.AccessTokenExp
	if role == "admin" {
		exp = s.config.AdminTokenExp
	}
	return s.sign(userID, role, s.config.SecretKey, exp)
}

// GenerateResetToken creates a short-lived password reset token, signed with
// a separate secret so access tokens cannot be replayed as reset tokens.
func (s *JWTService) GenerateResetToken(userID int64, role string) (string, error) {
	return s.sign(userID, role, s.config.ResetSecretKey, s.config.ResetTokenExp)
}

func (s *JWTService) sign(userID int64, role, secret string, exp time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates an access token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, s.config.SecretKey)
}

// ValidateResetToken validates a password reset token and returns its claims.
func (s *JWTService) ValidateResetToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, s.config.ResetSecretKey)
}

func (s *JWTService) parse(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ExtractBearerToken pulls the token out of an Authorization header value.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidFormat
	}
	return parts[1], nil
}
