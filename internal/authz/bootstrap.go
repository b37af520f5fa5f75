package authz

import (
	"fmt"

	"github.com/papelaria-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 店主与平台运营的路由权限矩阵（运营继承店主全部路由）
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleOwner,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/password", Action: "POST"},
				{Object: "/admin/tenant", Action: "*"},
				{Object: "/admin/catalog-profile", Action: "*"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/subcategories", Action: "*"},
				{Object: "/admin/subcategories/:id", Action: "*"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/stats", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "DELETE"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleOperator,
			Inherits: []string{constants.RoleOwner},
			Policies: []Policy{
				{Object: "/admin/tenants", Action: "*"},
				{Object: "/admin/tenants/:id", Action: "GET"},
				{Object: "/admin/tenants/:id/access", Action: "PATCH"},
				{Object: "/admin/tenants/:id/reset-password", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色，每次启动都会与代码中的路由矩阵对齐
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, seed := range BuiltinRoleSeeds() {
		if err := s.syncRole(seed); err != nil {
			return fmt.Errorf("sync role %s failed: %w", seed.Role, err)
		}
	}
	return nil
}
