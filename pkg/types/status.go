package types

type AccountRole string

const (
	AccountRoleUser      AccountRole = "user"
	AccountRoleDecorator AccountRole = "decorator"
	AccountRoleAdmin     AccountRole = "admin"
)

func (r AccountRole) Valid() bool {
	switch r {
	case AccountRoleUser, AccountRoleDecorator, AccountRoleAdmin:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// WorkStatus tracks assignment progress of a paid booking. A booking starts
// with no work status, becomes "pending" when payment is confirmed, and
// "assign" once a decorator has been assigned.
type WorkStatus string

const (
	WorkStatusNone    WorkStatus = ""
	WorkStatusPending WorkStatus = "pending"
	WorkStatusAssign  WorkStatus = "assign"
)

type ApplyStatus string

const (
	ApplyStatusPending  ApplyStatus = "pending"
	ApplyStatusAccepted ApplyStatus = "accepted"
	ApplyStatusRejected ApplyStatus = "rejected"
)

// Terminal reports whether the application can no longer be decided.
func (s ApplyStatus) Terminal() bool {
	return s == ApplyStatusAccepted || s == ApplyStatusRejected
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder normalizes a user-supplied sort order, defaulting to desc.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortOrderAsc) {
		return SortOrderAsc
	}
	return SortOrderDesc
}
