package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// DateLayout is how a calendar date is written to the store.
const DateLayout = "2006-01-02"

// Statuses lists the accepted attendance marks.
var Statuses = []string{StatusPresent, StatusAbsent}

type Attendance struct {
	bun.BaseModel `bun:"table:attendance,alias:a"`

	ID         int       `json:"id"          bun:"id,pk,autoincrement"`
	EmployeeID int       `json:"employee_id" bun:"employee_id"`
	Date       time.Time `json:"date"        bun:"date,type:date"`
	Status     string    `json:"status"      bun:"status"`
}
