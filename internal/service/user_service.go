package service

import (
	"context"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo     repository.UserRepository
	config   config.JWTConfig
	validate *validator.Validate
	hashCost int
}

func CreateUserService(repo repository.UserRepository, config config.JWTConfig) UserService {
	return &UserServiceImpl{
		repo:     repo,
		config:   config,
		validate: utils.NewValidator(),
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *UserServiceImpl) addUser(ctx context.Context, req dto.UserRequest, role string) (user domain.User, err error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if existing.ID != 0 {
		return user, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return user, err
	}

	now := utils.NowUTC().UnixMilli()
	user = domain.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		ExternalID:     ulid.Make().String(),
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	user.ID, err = s.repo.AddUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func normalizeUserRequest(req dto.UserRequest) dto.UserRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return req
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.UserRequest) (resp dto.UserResponse, err error) {
	req = normalizeUserRequest(req)
	if err = s.validate.Struct(req); err != nil {
		return resp, errs.FromValidator(err)
	}

	user, err := s.addUser(ctx, req, domain.RoleUser)
	if err != nil {
		return
	}

	return dto.UserResponse{
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
	}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err = s.validate.Struct(req); err != nil {
		return resp, errs.FromValidator(err)
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	// unknown email and wrong password are reported the same way
	if user.ID == 0 {
		return resp, errs.ErrInvalidCredentialsEmail
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ExternalID, user.Name, user.Role, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return
	}

	resp.Token = token
	resp.UserID = user.ExternalID

	return
}

// EnsureAdmin creates the admin account on startup. An existing account with the
// same email is left untouched.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, req dto.UserRequest) (err error) {
	req = normalizeUserRequest(req)
	if req.Email == "" || req.Password == "" {
		return nil
	}

	if err = s.validate.Struct(req); err != nil {
		return errs.FromValidator(err)
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if existing.ID != 0 {
		if existing.Role != domain.RoleAdmin {
			log.Ctx(ctx).Warn().Str("component", "EnsureAdmin").Str("email", req.Email).Msg("account exists without the admin role")
		}
		return nil
	}

	_, err = s.addUser(ctx, req, domain.RoleAdmin)
	if err != nil {
		return
	}

	log.Ctx(ctx).Info().Str("component", "EnsureAdmin").Str("email", req.Email).Msg("admin account created")

	return nil
}
