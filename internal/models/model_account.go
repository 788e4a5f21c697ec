package models

import (
	"time"

	"github.com/homedeco/marketplace/pkg/types"
)

// Account is a registered marketplace user. Role starts as "user" and is
// elevated to "decorator" only by an accepted decorator application, or to
// any role by an explicit admin action.
type Account struct {
	ID        string            `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Email     string            `gorm:"column:email;type:varchar(255);not null;uniqueIndex:unique_account_email" json:"email"`
	Role      types.AccountRole `gorm:"column:role;type:varchar(32);not null;default:'user'" json:"role"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}

func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == types.AccountRoleAdmin
}
