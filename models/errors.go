package models

import "errors"

var (
	ErrCartEmpty               = errors.New("cart is empty")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrMenuItemInUse           = errors.New("menu item is referenced by carts or orders")
	ErrCategoryInUse           = errors.New("category is referenced by menu items")
)
