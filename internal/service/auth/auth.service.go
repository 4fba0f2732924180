package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/middleware"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/pkg/validation"
	userRepo "transfer-storefront/internal/repository/user"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func emailCacheKey(email string) string {
	return "auth:email-exists:" + email
}

func (s *Service) CheckEmail(ctx context.Context, req *CheckEmailRequest) *types.Response {
	email := userRepo.NormalizeEmail(req.Email)
	if !validation.IsEmail(email) {
		return helper.ParseResponse(&types.Response{
			Message: "Invalid email address",
			Data:    CheckEmailResponse{Success: false},
		})
	}

	if cached, err := s.redis.Get(emailCacheKey(email)); err == nil && cached != "" {
		exists, _ := strconv.ParseBool(cached)
		return helper.ParseResponse(&types.Response{Data: CheckEmailResponse{Success: true, Exists: exists}})
	}

	exists, err := s.rp.User.ExistsByEmail(ctx, email)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to check email",
			Error:   err,
			Data:    CheckEmailResponse{Success: false},
		})
	}
	middleware.EmailChecksTotal.WithLabelValues(strconv.FormatBool(exists)).Inc()

	if err := s.redis.Set(emailCacheKey(email), strconv.FormatBool(exists), emailCacheTTL); err != nil {
		logger.Warning.Printf("failed to cache email check: %v", err)
	}

	return helper.ParseResponse(&types.Response{Data: CheckEmailResponse{Success: true, Exists: exists}})
}

func (s *Service) issue(user *models.User, remember bool) *types.Response {
	duration := jwt.DefaultDuration
	if remember {
		duration = jwt.RememberDuration
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Corrupt user id", Error: err})
	}
	token, exp, err := s.signer.GenerateToken(types.UserWithAuth{ID: id, Email: user.Email, Name: user.Name}, duration)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to issue token", Error: err})
	}
	return &types.Response{
		Data: TokenResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
		},
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) *types.Response {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to hash password", Error: err})
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        userRepo.NormalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.rp.User.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrEmailExists) {
			return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: "Email already registered", Error: err})
		}
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to create user", Error: err})
	}
	if err := s.redis.Del(emailCacheKey(user.Email)); err != nil {
		logger.Z().Warn("failed to drop cached email check", zap.String("email", user.Email), zap.Error(err))
	}

	logger.Z().Info("user registered", zap.String("user_id", user.ID))

	res := s.issue(user, false)
	if res.Error == nil {
		res.Code = http.StatusCreated
		res.Message = "Registered"
	}
	return helper.ParseResponse(res)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) *types.Response {
	user, err := s.rp.User.FindByEmail(ctx, req.Email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "Invalid email or password", Error: ErrInvalidCredentials})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load user", Error: err})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "Invalid email or password", Error: ErrInvalidCredentials})
	}
	return helper.ParseResponse(s.issue(user, req.RememberMe))
}

func (s *Service) Me(ctx context.Context, auth types.UserWithAuth) *types.Response {
	user, err := s.rp.User.FindByID(ctx, auth.ID.String())
	if errors.Is(err, userRepo.ErrNotFound) {
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "User no longer exists", Error: err})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load user", Error: err})
	}
	return helper.ParseResponse(&types.Response{Data: UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}})
}

func (s *Service) CaptureEmail(ctx context.Context, req *CaptureEmailRequest) *types.Response {
	source := req.Source
	if source == "" {
		source = "newsletter"
	}
	lead := &models.EmailLead{Email: userRepo.NormalizeEmail(req.Email), Source: source, CreatedAt: s.now().UTC()}
	if err := s.rp.Lead.Create(ctx, lead); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save email", Error: err})
	}

	if s.publisher != nil {
		event := types.EmailCaptured{Email: lead.Email, Source: lead.Source, CapturedAt: lead.CreatedAt}
		if err := s.publisher.Publish(ctx, types.QueueEmailCaptured, "EmailCaptured", event); err != nil {
			logger.Warning.Printf("failed to publish email captured event: %v", err)
		}
	}

	return helper.ParseResponse(&types.Response{Code: http.StatusCreated, Message: "Email captured"})
}

// HandleEmailCaptured consumes QueueEmailCaptured. Leads are already stored,
// so the consumer only records the event for the mailing pipeline.
func (s *Service) HandleEmailCaptured(_ context.Context, msg *amqp.Delivery) error {
	event, err := rabbitmq.Decode[types.EmailCaptured](msg)
	if err != nil {
		return fmt.Errorf("%w: %v", rabbitmq.ErrPermanent, err)
	}
	logger.Z().Info("email captured",
		zap.String("email", event.Email),
		zap.String("source", event.Source),
		zap.Time("captured_at", event.CapturedAt),
	)
	return nil
}
