package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hndoan/Lorises/config"
	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterRequestDTO) (*dto.RegisterResponseDTO, error)
	VerifyEmail(req dto.VerifyEmailRequestDTO) error
	Login(req dto.LoginRequestDTO) (*dto.AuthResponseDTO, error)
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.EmailVerificationRepository
	mailer   MailerService
	tokens   TokenService
	cfg      *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.EmailVerificationRepository,
	mailer MailerService,
	tokens TokenService,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailer:   mailer,
		tokens:   tokens,
		cfg:      cfg,
	}
}

func (s *authService) Register(req dto.RegisterRequestDTO) (*dto.RegisterResponseDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperr.ValidationFailed("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence("failed to check existing email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Persistence("failed to hash password", err)
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create user")
		return nil, apperr.Persistence("failed to create user", err)
	}
	if err := s.userRepo.AssignRole(user.ID, model.RoleLearner); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Register: failed to assign learner role")
		return nil, apperr.Persistence("failed to assign default role", err)
	}

	code := uuid.NewString()
	verification := model.EmailVerification{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Scoring.OTPLifetimeMinutes) * time.Minute),
	}
	if err := s.otpRepo.Create(&verification); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Register: failed to store verification code")
		return nil, apperr.Persistence("failed to store verification code", err)
	}

	if err := s.mailer.SendVerificationCode(user.Email, user.FullName, code); err != nil {
		// Registration already succeeded; the user can request a resend.
		log.Warn().Err(err).Uint("userID", user.ID).Msg("Register: verification mail not delivered")
	}

	return &dto.RegisterResponseDTO{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "registered, check your inbox for the verification code",
	}, nil
}

func (s *authService) VerifyEmail(req dto.VerifyEmailRequestDTO) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("no account for that email")
		}
		return apperr.Persistence("failed to load user", err)
	}

	verification, err := s.otpRepo.FindActive(user.ID, req.Code, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ValidationFailed("verification code is invalid or expired")
		}
		return apperr.Persistence("failed to load verification code", err)
	}

	if err := s.otpRepo.Consume(verification.ID); err != nil {
		return apperr.Persistence("failed to consume verification code", err)
	}
	if err := s.userRepo.MarkVerified(user.ID); err != nil {
		return apperr.Persistence("failed to mark user verified", err)
	}

	log.Info().Uint("userID", user.ID).Msg("VerifyEmail: account verified")
	return nil
}

func (s *authService) Login(req dto.LoginRequestDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("invalid email or password")
		}
		return nil, apperr.Persistence("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	if !user.IsVerified {
		return nil, apperr.Forbidden("account is not verified yet")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperr.Persistence("failed to issue token", err)
	}

	return &dto.AuthResponseDTO{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
	}, nil
}
