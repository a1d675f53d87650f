package models

import "time"

const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

// User is a minimal mirror of the identity service's account record.
// Credentials and token issuance live outside this service; we only keep
// what ordering and group management need.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `json:"email"`
	Groups    []Group   `gorm:"many2many:user_groups" json:"-"`
	CreatedAt time.Time `json:"-"`
}

type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Role is computed once per request from group membership and carried in
// the request context; handlers never re-query groups.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDelivery Role = "delivery"
	RoleManager  Role = "manager"
)

// Role derives the user's role from its preloaded groups. Manager wins
// over Delivery crew; everyone else is a customer.
func (u *User) Role() Role {
	role := RoleCustomer
	for _, g := range u.Groups {
		switch g.Name {
		case GroupManager:
			return RoleManager
		case GroupDeliveryCrew:
			role = RoleDelivery
		}
	}
	return role
}
