package auth

import (
	"context"
	"errors"
	"time"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	SignupUser(ctx context.Context, req SignupUserRequest) error
	LoginUser(ctx context.Context, req LoginRequest) (string, error)
	SignupOrganizer(ctx context.Context, req SignupOrganizerRequest) error
	LoginOrganizer(ctx context.Context, req LoginRequest) (string, error)

	// ParseToken validates a bearer token and returns the caller identity.
	ParseToken(tokenStr string) (Caller, error)
}

type service struct {
	repo   Repository
	secret string
	ttl    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:   r,
		secret: cfg.JWTSecret,
		ttl:    time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
}

// =============================
// Signup
// =============================

func (s *service) SignupUser(ctx context.Context, req SignupUserRequest) error {
	if _, err := s.repo.FindUserByEmail(ctx, req.Email); err == nil {
		return utils.UnprocessableEntity("User with this email exists. Please login")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return utils.UnprocessableEntity("Unable to sign up")
	}
	return nil
}

func (s *service) SignupOrganizer(ctx context.Context, req SignupOrganizerRequest) error {
	if _, err := s.repo.FindOrganizerByEmail(ctx, req.Email); err == nil {
		return utils.UnprocessableEntity("Organizer with this email exists. Please login")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	organizer := &Organizer{
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		PasswordHash:     string(hash),
	}
	if err := s.repo.CreateOrganizer(ctx, organizer); err != nil {
		return utils.UnprocessableEntity("Unable to sign up")
	}
	return nil
}

// =============================
// Login
// =============================

func (s *service) LoginUser(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.UnprocessableEntity("Wrong credentials")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", utils.UnprocessableEntity("Wrong credentials")
	}

	return s.signToken(user.ID, user.Email, RoleUser)
}

func (s *service) LoginOrganizer(ctx context.Context, req LoginRequest) (string, error) {
	organizer, err := s.repo.FindOrganizerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.UnprocessableEntity("Wrong credentials")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(req.Password)) != nil {
		return "", utils.UnprocessableEntity("Wrong credentials")
	}

	return s.signToken(organizer.ID, organizer.Email, RoleOrganizer)
}

// =============================
// Tokens
// =============================

func (s *service) signToken(id, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *service) ParseToken(tokenStr string) (Caller, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return Caller{}, utils.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, utils.Unauthorized("invalid claims")
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return Caller{}, utils.Unauthorized("invalid claims")
	}

	return Caller{ID: id, Email: email, Role: role}, nil
}
