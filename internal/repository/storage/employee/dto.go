package employee

import (
	"github.com/uptrace/bun"
)

type GetListResponse struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID         int    `json:"id"          bun:"id"`
	EmployeeID string `json:"employee_id" bun:"employee_id"`
	FullName   string `json:"full_name"   bun:"full_name"`
	Email      string `json:"email"       bun:"email"`
	Department string `json:"department"  bun:"department"`
}

type GetDetailByIdResponse struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID         int    `json:"id"          bun:"id"`
	EmployeeID string `json:"employee_id" bun:"employee_id"`
	FullName   string `json:"full_name"   bun:"full_name"`
	Email      string `json:"email"       bun:"email"`
	Department string `json:"department"  bun:"department"`
}

type CreateRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id" yaml:"employee_id"`
	FullName   string `json:"full_name"   form:"full_name"   yaml:"full_name"`
	Email      string `json:"email"       form:"email"       yaml:"email"`
	Department string `json:"department"  form:"department"  yaml:"department"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID         int    `json:"id"          bun:"-"`
	EmployeeID string `json:"employee_id" bun:"employee_id"`
	FullName   string `json:"full_name"   bun:"full_name"`
	Email      string `json:"email"       bun:"email"`
	Department string `json:"department"  bun:"department"`
}
