package domain

type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
	// DiscountID references the currently-applicable loyalty tier. It is
	// recomputed from monthly activity, not kept historically; only the
	// rental's applied_discount field is an immutable snapshot.
	DiscountID *int64 `json:"discount_id,omitempty"`
}
