package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// Roles carried in identity tokens.
const (
	RoleEmployee = "employee"
	RoleCompany  = "company"
	RoleAdmin    = "admin"
)
