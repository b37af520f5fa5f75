package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 授权服务
// 主体为账号角色（role:owner / role:operator），资源为去掉 /api/v1 前缀的 gin 路由模板，
// 店铺隔离由 handler 层按 tenant_id 过滤，这里只判定角色能否访问路由
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceRole 按账号角色判定授权，obj 传 c.FullPath()
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	return s.Enforce(subject, obj, act)
}

// RolePolicies 查询角色直连策略（按资源、动作排序）
func (s *Service) RolePolicies(role string) ([]Policy, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies failed: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object == policies[j].Object {
			return policies[i].Action < policies[j].Action
		}
		return policies[i].Object < policies[j].Object
	})
	return policies, nil
}

// syncRole 将角色的策略与继承关系对齐到给定定义，多余的旧策略会被移除
func (s *Service) syncRole(seed RoleSeed) error {
	subject, err := NormalizeRole(seed.Role)
	if err != nil {
		return err
	}

	want := make(map[[2]string]struct{}, len(seed.Policies))
	for _, policy := range seed.Policies {
		action := NormalizeAction(policy.Action)
		if action == "" {
			return fmt.Errorf("policy action is required for %s", policy.Object)
		}
		want[[2]string{NormalizeObject(policy.Object), action}] = struct{}{}
	}
	existing, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return fmt.Errorf("get role policies failed: %w", err)
	}
	for _, rule := range existing {
		if len(rule) < 3 {
			continue
		}
		key := [2]string{rule[1], rule[2]}
		if _, ok := want[key]; ok {
			delete(want, key)
			continue
		}
		if _, err := s.enforcer.RemovePolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("remove stale policy failed: %w", err)
		}
	}
	for key := range want {
		if _, err := s.enforcer.AddPolicy(subject, key[0], key[1]); err != nil {
			return fmt.Errorf("grant policy failed: %w", err)
		}
	}

	parents := make(map[string]struct{}, len(seed.Inherits))
	for _, parent := range seed.Inherits {
		parentSubject, err := NormalizeRole(parent)
		if err != nil {
			return err
		}
		parents[parentSubject] = struct{}{}
	}
	links, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return fmt.Errorf("get role inheritance failed: %w", err)
	}
	for _, link := range links {
		if len(link) < 2 {
			continue
		}
		if _, ok := parents[link[1]]; ok {
			delete(parents, link[1])
			continue
		}
		if _, err := s.enforcer.RemoveGroupingPolicy(link[0], link[1]); err != nil {
			return fmt.Errorf("remove stale inheritance failed: %w", err)
		}
	}
	for parent := range parents {
		if _, err := s.enforcer.AddGroupingPolicy(subject, parent); err != nil {
			return fmt.Errorf("link role inheritance failed: %w", err)
		}
	}
	return nil
}

// NormalizeRole 统一角色名称
func NormalizeRole(role string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return "", fmt.Errorf("role is required")
	}
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if !strings.HasPrefix(normalized, rolePrefix) {
		normalized = rolePrefix + normalized
	}
	if len(normalized) <= len(rolePrefix) {
		return "", fmt.Errorf("role is required")
	}
	return normalized, nil
}

// NormalizeObject 统一授权资源路径
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if normalized == "" {
		return "/"
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	if strings.HasPrefix(normalized, apiV1Prefix+"/") {
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	if normalized == apiV1Prefix {
		return "/"
	}
	return normalized
}

// NormalizeAction 统一授权动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
