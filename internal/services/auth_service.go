package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidshare/internal/config"
	"vidshare/internal/domain/user"
	"vidshare/internal/repository"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Identity string // email or username
	Password string
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, vidshare_errors.ErrAlreadyExists
	}
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return AuthResponse{}, vidshare_errors.ErrAlreadyExists
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Role:         user.RoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(*newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Identity == "" || in.Password == "" {
		return AuthResponse{}, vidshare_errors.Validationf("identity and password are required")
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(in.Identity))
	if err != nil {
		u, err = s.userRepo.GetByUsername(ctx, in.Identity)
	}
	if err != nil {
		return AuthResponse{}, vidshare_errors.ErrUnauthorized
	}
	if !u.IsActive {
		return AuthResponse{}, vidshare_errors.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, vidshare_errors.ErrUnauthorized
	}

	return s.issueToken(u)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, vidshare_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, vidshare_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, vidshare_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, vidshare_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) issueToken(u user.User) (AuthResponse, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User: UserInfo{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		},
	}, nil
}

func validateRegister(in RegisterInput) error {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return vidshare_errors.Validationf("a valid email is required")
	}
	if len(strings.TrimSpace(in.Username)) < 3 {
		return vidshare_errors.Validationf("a username of at least 3 characters is required")
	}
	if len(in.Password) < 8 {
		return vidshare_errors.Validationf("a password of at least 8 characters is required")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type ctxKey string

var activeUserKey ctxKey = "active_user"

func WithActiveContext(ctx context.Context, active user.Active) context.Context {
	return context.WithValue(ctx, activeUserKey, active)
}

func ActiveFromContext(ctx context.Context) (user.Active, bool) {
	value := ctx.Value(activeUserKey)
	if value == nil {
		return user.Active{}, false
	}
	active, ok := value.(user.Active)
	return active, ok
}

// ActiveFromClaims converts parsed token claims into the request identity.
func ActiveFromClaims(claims AccessClaims) (user.Active, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return user.Active{}, errors.New("invalid subject")
	}
	return user.Active{ID: id, Role: claims.Role}, nil
}
