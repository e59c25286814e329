package service

import (
	"context"
	stderrors "errors"
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/constants"
	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/modules/auth/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	VerifyToken(token string) (string, *errors.AppError)
}

// AdminClaims is the token payload for an admin session.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates the salon administrator against a configured
// bcrypt hash and issues short-lived bearer tokens.
type AuthService struct {
	secret       []byte
	passwordHash []byte
	clock        clock.Clock
}

func NewAuthService(jwtSecret string, adminPasswordHash string, clk clock.Clock) *AuthService {
	return &AuthService{
		secret:       []byte(jwtSecret),
		passwordHash: []byte(adminPasswordHash),
		clock:        clk,
	}
}

// Login verifies the admin password and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	if req == nil || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Mot de passe requis", nil)
	}

	if len(s.passwordHash) == 0 {
		logger.Error("AuthService:Login:NoPasswordHashConfigured")
		return nil, errors.NewAppError(errors.ErrInternalServer, "Erreur serveur", nil)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		logger.Warn("AuthService:Login:InvalidPassword")
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Mot de passe incorrect", nil)
	}

	now := s.clock.Now()
	expiresAt := now.Add(constants.AdminTokenTTL)

	claims := AdminClaims{
		Role: constants.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Error("AuthService:Login:SignToken:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Erreur serveur", err)
	}

	logger.Info("AuthService:Login:Success")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// VerifyToken validates a bearer token and returns the authenticated role.
func (s *AuthService) VerifyToken(tokenString string) (string, *errors.AppError) {
	claims := &AdminClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.NewAppError(errors.ErrTokenExpired, "Token expiré", err)
		}
		return "", errors.NewAppError(errors.ErrUnauthorized, "Token invalide ou expiré", err)
	}

	if !token.Valid || claims.Role != constants.AdminRole {
		return "", errors.NewAppError(errors.ErrForbidden, "Accès refusé", nil)
	}

	return claims.Role, nil
}
