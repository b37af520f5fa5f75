package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// TenantService 店铺服务
type TenantService struct {
	tenantRepo repository.TenantRepository
	adminRepo  repository.AdminRepository
	auth       *AuthService
	now        func() time.Time
}

// NewTenantService 创建店铺服务
func NewTenantService(tenantRepo repository.TenantRepository, adminRepo repository.AdminRepository, auth *AuthService) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		adminRepo:  adminRepo,
		auth:       auth,
		now:        time.Now,
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FindTenant 按 ID（纯数字）或 slug 查找店铺，不校验状态
func (s *TenantService) FindTenant(identifier string) (*models.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrTenantNotFound
	}
	var (
		tenant *models.Tenant
		err    error
	)
	if isDigits(identifier) {
		id, parseErr := strconv.ParseUint(identifier, 10, 64)
		if parseErr != nil {
			return nil, ErrTenantNotFound
		}
		tenant, err = s.tenantRepo.GetByID(uint(id))
	} else {
		tenant, err = s.tenantRepo.GetBySlug(identifier)
	}
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// ResolveTenant 解析公开访问的店铺，仅返回可用店铺
func (s *TenantService) ResolveTenant(identifier string) (*models.Tenant, error) {
	tenant, err := s.FindTenant(identifier)
	if err != nil {
		return nil, err
	}
	if !tenant.Active(s.now()) {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// EnsureActive 校验店铺可用
func (s *TenantService) EnsureActive(tenantID uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	if !tenant.Active(s.now()) {
		return nil, ErrTenantInactive
	}
	return tenant, nil
}

// Slugify 将店铺名转换为 URL 友好的标识（去除重音）
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug 生成唯一 slug，冲突时追加 -1、-2 ...
func (s *TenantService) UniqueSlug(name string, tenantID uint) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = fmt.Sprintf("tenant-%d", tenantID)
	}
	var exclude *uint
	if tenantID != 0 {
		exclude = &tenantID
	}
	candidate := base
	for suffix := 1; ; suffix++ {
		count, err := s.tenantRepo.CountBySlug(candidate, exclude)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// TenantProfileInput 店铺资料输入
type TenantProfileInput struct {
	BusinessName string
	WhatsApp     string
}

// UpdateProfile 更新店铺名称与 WhatsApp（首次填写与后续修改共用），名称变化时重新生成 slug
func (s *TenantService) UpdateProfile(tenantID uint, input TenantProfileInput) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	name := strings.TrimSpace(input.BusinessName)
	whatsapp := normalizePhone(input.WhatsApp)
	if name != "" && (name != tenant.BusinessName || tenant.Slug == nil) {
		slug, err := s.UniqueSlug(name, tenant.ID)
		if err != nil {
			return nil, err
		}
		tenant.Slug = &slug
	}
	if name != "" {
		tenant.BusinessName = name
	}
	if whatsapp != "" {
		tenant.WhatsApp = whatsapp
	}
	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ListTenants 店铺列表（平台运营）
func (s *TenantService) ListTenants(filter repository.TenantListFilter) ([]models.Tenant, int64, error) {
	return s.tenantRepo.List(filter)
}

// CreateTenantInput 创建店铺输入
type CreateTenantInput struct {
	BusinessName  string
	WhatsApp      string
	OwnerEmail    string
	OwnerPassword string
	AccessEndDate *time.Time
}

// CreateTenant 创建店铺及店主账号
func (s *TenantService) CreateTenant(ctx context.Context, input CreateTenantInput) (*models.Tenant, error) {
	email, err := NormalizeEmail(input.OwnerEmail)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.OwnerPassword); err != nil {
		return nil, err
	}
	existing, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hashed, err := s.auth.HashPassword(input.OwnerPassword)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		BusinessName:  strings.TrimSpace(input.BusinessName),
		WhatsApp:      normalizePhone(input.WhatsApp),
		AccessEndDate: input.AccessEndDate,
		IsActive:      true,
	}
	err = s.tenantRepo.Transaction(func(tx *gorm.DB) error {
		tenantRepo := repository.NewTenantRepository(tx)
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		txService := &TenantService{tenantRepo: tenantRepo, now: s.now}
		slug, err := txService.UniqueSlug(tenant.BusinessName, tenant.ID)
		if err != nil {
			return err
		}
		tenant.Slug = &slug
		if err := tenantRepo.Update(tenant); err != nil {
			return err
		}
		owner := &models.Admin{
			Email:        email,
			PasswordHash: hashed,
			TenantID:     &tenant.ID,
			Role:         constants.RoleOwner,
		}
		if err := repository.NewAdminRepository(tx).Create(owner); err != nil {
			return err
		}
		tenant.Owner = owner
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("tenant_created", "tenant_id", tenant.ID, "slug", tenant.SlugValue(), "owner_email", email)
	return tenant, nil
}

// TenantAccessInput 店铺访问权限输入
type TenantAccessInput struct {
	AccessEndDate      *time.Time
	ClearAccessEndDate bool
	IsActive           *bool
}

// UpdateAccess 更新店铺到期日与启用状态
func (s *TenantService) UpdateAccess(tenantID uint, input TenantAccessInput) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	if input.ClearAccessEndDate {
		tenant.AccessEndDate = nil
	} else if input.AccessEndDate != nil {
		tenant.AccessEndDate = input.AccessEndDate
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}
	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	logger.Infow("tenant_access_updated", "tenant_id", tenant.ID, "is_active", tenant.IsActive, "access_end_date", tenant.AccessEndDate)
	return tenant, nil
}

// ResetOwnerPassword 重置店主密码
func (s *TenantService) ResetOwnerPassword(ctx context.Context, tenantID uint, password string) error {
	return s.auth.ResetOwnerPassword(ctx, tenantID, password)
}
