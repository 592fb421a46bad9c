package domain

import "time"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleCourier    Role = "courier"
	RoleShopAdmin  Role = "shop_admin"
	RoleSuperAdmin Role = "super_admin"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	ShopID    *string   `json:"shopId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsOperatorFor reports whether the user may manage orders of the given shop.
// Super admins manage every shop; shop admins only their own.
func (u User) IsOperatorFor(shopID string) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	return u.Role == RoleShopAdmin && u.ShopID != nil && *u.ShopID == shopID
}
