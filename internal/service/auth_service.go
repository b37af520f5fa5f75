package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AuthService 后台账号认证服务
type AuthService struct {
	cfg        *config.Config
	adminRepo  repository.AdminRepository
	tenantRepo repository.TenantRepository
	now        func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, tenantRepo repository.TenantRepository) *AuthService {
	return &AuthService{
		cfg:        cfg,
		adminRepo:  adminRepo,
		tenantRepo: tenantRepo,
		now:        time.Now,
	}
}

// LoginLockedError 登录被临时锁定
type LoginLockedError struct {
	RetryAfter time.Duration
}

func (e *LoginLockedError) Error() string {
	return fmt.Sprintf("login locked, retry after %s", e.RetryAfter)
}

// Is 支持 errors.Is(err, ErrLoginLocked)
func (e *LoginLockedError) Is(target error) bool {
	return target == ErrLoginLocked
}

// RetrySeconds 剩余锁定秒数（至少 1 秒）
func (e *LoginLockedError) RetrySeconds() int {
	seconds := int(e.RetryAfter / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码长度
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// NormalizeEmail 归一化并校验邮箱
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrEmailInvalid
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrEmailInvalid
	}
	return email, nil
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	TenantID     uint   `json:"tenant_id"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token，remember 为 true 时使用长有效期
func (s *AuthService) GenerateJWT(admin *models.Admin, remember bool) (string, time.Time, error) {
	now := s.now()
	hours := s.cfg.JWT.ExpireHours
	if remember && s.cfg.JWT.RememberMeExpireHours > 0 {
		hours = s.cfg.JWT.RememberMeExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		AdminID:      admin.ID,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if admin.TenantID != nil {
		claims.TenantID = *admin.TenantID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

// LoginResult 登录结果
type LoginResult struct {
	Admin     *models.Admin
	Tenant    *models.Tenant
	Token     string
	ExpiresAt time.Time
}

// Login 后台登录（店主或平台运营）
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	locked, retryAfter, err := cache.LoginLocked(ctx, email)
	if err != nil {
		logger.Warnw("login_lock_check_failed", "email", email, "error", err)
	}
	if locked {
		return nil, &LoginLockedError{RetryAfter: retryAfter}
	}

	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if admin == nil || s.VerifyPassword(admin.PasswordHash, input.Password) != nil {
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	var tenant *models.Tenant
	if admin.Role == constants.RoleOwner {
		if admin.TenantID == nil {
			return nil, ErrTenantNotFound
		}
		tenant, err = s.tenantRepo.GetByID(*admin.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, ErrTenantNotFound
		}
		if !tenant.Active(s.now()) {
			return nil, ErrTenantInactive
		}
	}

	token, expiresAt, err := s.GenerateJWT(admin, input.Remember)
	if err != nil {
		return nil, err
	}

	now := s.now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.UpdateLastLogin(admin.ID, now); err != nil {
		return nil, err
	}
	if err := cache.ClearLoginFailures(ctx, email); err != nil {
		logger.Warnw("login_failures_clear_failed", "email", email, "error", err)
	}
	_ = cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin))

	return &LoginResult{Admin: admin, Tenant: tenant, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	rule := s.cfg.Security.LoginRateLimit
	window := time.Duration(rule.WindowSeconds) * time.Second
	block := time.Duration(rule.BlockSeconds) * time.Second
	count, err := cache.RecordLoginFailure(ctx, email, window, rule.MaxAttempts, block)
	if err != nil {
		logger.Warnw("login_failure_record_failed", "email", email, "error", err)
		return
	}
	if rule.MaxAttempts > 0 && count >= int64(rule.MaxAttempts) {
		logger.Warnw("login_locked", "email", email, "attempts", count)
	}
}

// ResolveAdminState 校验 token 对应的账号状态（优先读缓存）
func (s *AuthService) ResolveAdminState(ctx context.Context, claims *JWTClaims) (*cache.AdminAuthState, error) {
	if claims == nil || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	state, hit, err := cache.GetAdminAuthState(ctx, claims.AdminID)
	if err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", claims.AdminID, "error", err)
	}
	if !hit || state == nil {
		admin, err := s.adminRepo.GetByID(claims.AdminID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, ErrInvalidToken
		}
		state = cache.BuildAdminAuthState(admin)
		_ = cache.SetAdminAuthState(ctx, state)
	}
	if state.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	return state, nil
}

// ChangePassword 修改密码并使旧 token 失效
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	return s.setPassword(ctx, admin, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, admin *models.Admin, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hashed, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	admin.PasswordHash = hashed
	admin.TokenVersion++
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin))
	return nil
}

// ResetOwnerPassword 平台运营重置店主密码
func (s *AuthService) ResetOwnerPassword(ctx context.Context, tenantID uint, password string) error {
	admin, err := s.adminRepo.GetByTenantID(tenantID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	return s.setPassword(ctx, admin, password)
}

