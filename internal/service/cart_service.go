package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
)

// CartService 会话购物车服务
type CartService struct {
	store   CartStore
	catalog *CatalogService
	tenants *TenantService
}

// NewCartService 创建购物车服务
func NewCartService(store CartStore, catalog *CatalogService, tenants *TenantService) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
		tenants: tenants,
	}
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	SessionID        string
	TenantIdentifier string
	ProductID        uint
	Quantity         string
	VariationIDs     []string
	VariationID      string
}

// UpdateCartItemInput 修改购物车条目输入
type UpdateCartItemInput struct {
	SessionID string
	ItemKey   string
	Action    string
}

// Load 读取会话购物车
func (s *CartService) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return NewCart(), nil
	}
	return s.store.Load(ctx, sessionID)
}

// Summary 返回规范化后的购物车汇总
func (s *CartService) Summary(ctx context.Context, sessionID string) (CartSummary, error) {
	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return CartSummary{}, err
	}
	return NormalizeCart(cart), nil
}

// AddItem 加入商品；切换店铺时清空原购物车
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (CartSummary, error) {
	tenant, err := s.tenants.ResolveTenant(input.TenantIdentifier)
	if err != nil {
		return CartSummary{}, err
	}
	product, err := s.catalog.GetPublicProduct(tenant.ID, input.ProductID)
	if err != nil {
		return CartSummary{}, err
	}
	cart, err := s.Load(ctx, input.SessionID)
	if err != nil {
		return CartSummary{}, err
	}

	tenantKey := strconv.FormatUint(uint64(tenant.ID), 10)
	if cart.Tenant != tenantKey {
		if cart.Len() > 0 {
			logger.Infow("cart_tenant_switched",
				"session_id", input.SessionID,
				"from_tenant", cart.Tenant,
				"to_tenant", tenantKey,
			)
			ClearCart(cart)
		}
		cart.Tenant = tenantKey
		cart.Modified = true
	}

	if err := AddToCart(cart, product, AddToCartInput{
		Quantity:     input.Quantity,
		VariationIDs: input.VariationIDs,
		VariationID:  input.VariationID,
	}); err != nil {
		return CartSummary{}, err
	}
	if err := s.persist(ctx, input.SessionID, cart); err != nil {
		return CartSummary{}, err
	}
	return NormalizeCart(cart), nil
}

// UpdateItem 执行 decrement / remove
func (s *CartService) UpdateItem(ctx context.Context, input UpdateCartItemInput) (CartSummary, error) {
	itemKey := strings.TrimSpace(input.ItemKey)
	if itemKey == "" {
		return CartSummary{}, ErrCartItemNotFound
	}
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if action != constants.CartActionDecrement && action != constants.CartActionRemove {
		return CartSummary{}, ErrCartActionInvalid
	}
	cart, err := s.Load(ctx, input.SessionID)
	if err != nil {
		return CartSummary{}, err
	}
	switch action {
	case constants.CartActionDecrement:
		DecrementCartItem(cart, itemKey)
	case constants.CartActionRemove:
		RemoveCartItem(cart, itemKey)
	}
	if err := s.persist(ctx, input.SessionID, cart); err != nil {
		return CartSummary{}, err
	}
	return NormalizeCart(cart), nil
}

// Clear 清空会话购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.store.Clear(ctx, sessionID)
}

func (s *CartService) persist(ctx context.Context, sessionID string, cart *Cart) error {
	if cart == nil || !cart.Modified || strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return err
	}
	cart.Modified = false
	return nil
}
