package utils

import (
	"errors"
	"fmt"
	"time"

	"volunteer_platform/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer is stamped into every token and required on validation.
const TokenIssuer = "volunteer_platform"

var errMissingExpiry = errors.New("token has no expiry")

// JWTClaims carries the caller identity: user id and role.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal resolves the claims into a caller. Tokens with a non-uuid
// subject or an unknown role are rejected.
func (c *JWTClaims) Principal() (model.Principal, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid user_id claim: %w", err)
	}
	if c.Role != model.RoleVolunteer && c.Role != model.RoleAdmin {
		return model.Principal{}, fmt.Errorf("invalid role claim %q", c.Role)
	}
	return model.Principal{UserID: id, Role: c.Role}, nil
}

type JWTUtil struct {
	secretKey []byte
	ttl       time.Duration
	parser    *jwt.Parser
	now       func() time.Time
}

func NewJWTUtil(secretKey string, expirationHours int64) *JWTUtil {
	return &JWTUtil{
		secretKey: []byte(secretKey),
		ttl:       time.Duration(expirationHours) * time.Hour,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(TokenIssuer),
		),
		now: time.Now,
	}
}

// GenerateToken signs an HS256 token for the user.
func (ju *JWTUtil) GenerateToken(userID uuid.UUID, role string) (string, error) {
	issued := ju.now()
	claims := &JWTClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ju.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ju.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm, issuer and expiry.
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	if _, err := ju.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return ju.secretKey, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errMissingExpiry
	}
	return claims, nil
}
