package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anodeen/HeadShot/internal/tenants"
	"github.com/anodeen/HeadShot/pkg/config"
	"github.com/anodeen/HeadShot/pkg/db/models"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Invalid email or password."

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the authentication and session resolution surface.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*TenantSummary, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*models.Tenant, error)
}

type service struct {
	tenants     tenants.Repository
	sessions    Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
	sessionCfg  config.SessionConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build a session service.
type ServiceParams struct {
	TenantRepo     tenants.Repository
	SessionRepo    Repository
	TxRunner       txRunner
	PasswordConfig config.PasswordConfig
	SessionConfig  config.SessionConfig
	Now            func() time.Time
}

// NewService constructs a session service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TenantRepo == nil {
		return nil, fmt.Errorf("tenant repository is required")
	}
	if params.SessionRepo == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tenants:     params.TenantRepo,
		sessions:    params.SessionRepo,
		tx:          params.TxRunner,
		passwordCfg: params.PasswordConfig,
		sessionCfg:  params.SessionConfig,
		now:         now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*TenantSummary, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email and password are required.")
	}
	minLen := s.passwordCfg.MinLength
	if minLen <= 0 {
		minLen = 6
	}
	if len(input.Password) < minLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Password must be at least %d characters.", minLen))
	}

	passwordHash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Tenant
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.tenants.WithTx(tx)

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "Email already registered.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check tenant email")
		}

		tenant, err := repo.Create(ctx, &models.Tenant{
			Email:        email,
			PasswordHash: passwordHash,
		})
		if err != nil {
			// Two registrations can race past the pre-check; the unique index
			// decides the winner and the loser reports the same conflict.
			if pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "Email already registered.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}
		created = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summarize(created), nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	tenant, err := s.tenants.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find tenant")
	}

	ok, err := security.VerifyPassword(input.Password, tenant.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := security.NewOpaqueToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if _, err := s.sessions.Create(ctx, &models.Session{
		Token:    token,
		TenantID: tenant.ID,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}

	return &LoginResult{
		Token: token,
		User:  *summarize(tenant),
	}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete session")
	}
	return nil
}

func (s *service) Resolve(ctx context.Context, token string) (*models.Tenant, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Missing bearer token.")
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or expired session.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find session")
	}

	if ttl := s.sessionCfg.IdleTTL; ttl > 0 && s.now().Sub(session.CreatedAt) > ttl {
		if err := s.sessions.DeleteByToken(ctx, token); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "expire session")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or expired session.")
	}

	tenant, err := s.tenants.FindByID(ctx, session.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or expired session.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find session tenant")
	}
	return tenant, nil
}

func summarize(tenant *models.Tenant) *TenantSummary {
	return &TenantSummary{
		ID:        tenant.ID,
		Email:     tenant.Email,
		CreatedAt: tenant.CreatedAt,
	}
}
