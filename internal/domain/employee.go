package domain

import "context"

// Employee is the account record owned by the employee directory. Password
// holds the credential hash and must never leave the directory boundary.
type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"-"`
}

// EmployeeSummary is the redacted employee view embedded in responses.
type EmployeeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (e Employee) Redacted() EmployeeSummary {
	return EmployeeSummary{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
	}
}

type EmployeeDirectory interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
}

type CompanyDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
