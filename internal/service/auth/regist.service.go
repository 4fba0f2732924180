package auth

import (
	"context"
	"time"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/pkg/redis"
	"transfer-storefront/internal/repository"

	amqp "github.com/rabbitmq/amqp091-go"
)

const emailCacheTTL = 30 * time.Second

type Service struct {
	rp        repository.IRepository
	redis     redis.IRedis
	publisher rabbitmq.IPublisher
	signer    *jwt.Signer
	now       func() time.Time
}

type IService interface {
	CheckEmail(ctx context.Context, req *CheckEmailRequest) *types.Response
	Register(ctx context.Context, req *RegisterRequest) *types.Response
	Login(ctx context.Context, req *LoginRequest) *types.Response
	Me(ctx context.Context, user types.UserWithAuth) *types.Response
	CaptureEmail(ctx context.Context, req *CaptureEmailRequest) *types.Response
	HandleEmailCaptured(ctx context.Context, msg *amqp.Delivery) error
}

// NewService wires the auth flows. publisher may be nil, in which case
// captured emails are stored but not announced.
func NewService(rp repository.IRepository, redis redis.IRedis, publisher rabbitmq.IPublisher, signer *jwt.Signer) IService {
	return &Service{
		rp:        rp,
		redis:     redis,
		publisher: publisher,
		signer:    signer,
		now:       time.Now,
	}
}

// Request/Response DTOs

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CheckEmailResponse struct {
	Success bool `json:"success"`
	Exists  bool `json:"exists"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,emailaddr"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,emailaddr"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type CaptureEmailRequest struct {
	Email  string `json:"email" validate:"required,emailaddr"`
	Source string `json:"source" validate:"omitempty,max=100"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
