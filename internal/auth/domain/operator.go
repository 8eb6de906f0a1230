package domain

// Operator is an authenticated caller of the admin API
type Operator struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

const RoleAdmin = "admin"
