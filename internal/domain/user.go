package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
	// RoleMarketplace is reserved for the system account that holds
	// escrowed tickets while they are listed.
	RoleMarketplace = "marketplace"
)

type User struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (u User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
