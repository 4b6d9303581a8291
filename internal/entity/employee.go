package entity

import (
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID         int    `json:"id"          bun:"id,pk,autoincrement"`
	EmployeeID string `json:"employee_id" bun:"employee_id"`
	FullName   string `json:"full_name"   bun:"full_name"`
	Email      string `json:"email"       bun:"email"`
	Department string `json:"department"  bun:"department"`
}
