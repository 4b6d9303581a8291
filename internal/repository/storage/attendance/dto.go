package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	EmployeeID *int
}

type GetListResponse struct {
	ID                 int       `json:"id"`
	EmployeeID         int       `json:"employee_id"`
	Date               date.Date `json:"date"`
	Status             string    `json:"status"`
	EmployeeName       string    `json:"employee_name"`
	EmployeeEmployeeID string    `json:"employee_employee_id"`
}

type CreateRequest struct {
	EmployeeID *int       `json:"employee_id" form:"employee_id"`
	Date       *date.Date `json:"date"        form:"date"`
	Status     string     `json:"status"      form:"status"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID                 int       `json:"id"                   bun:"-"`
	EmployeeID         int       `json:"employee_id"          bun:"employee_id"`
	Day                string    `json:"-"                    bun:"date"`
	Date               date.Date `json:"date"                 bun:"-"`
	Status             string    `json:"status"               bun:"status"`
	EmployeeName       string    `json:"employee_name"        bun:"-"`
	EmployeeEmployeeID string    `json:"employee_employee_id" bun:"-"`
}

type listRow struct {
	ID                 int       `bun:"id"`
	EmployeeID         int       `bun:"employee_id"`
	Date               time.Time `bun:"date"`
	Status             string    `bun:"status"`
	EmployeeName       string    `bun:"employee_name"`
	EmployeeEmployeeID string    `bun:"employee_employee_id"`
}
