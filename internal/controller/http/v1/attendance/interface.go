package attendance

import (
	"context"

	"hrms/backend/internal/repository/storage/attendance"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, error)
	GetListByEmployee(ctx context.Context, employeeID int) ([]attendance.GetListResponse, error)
	Create(ctx context.Context, request attendance.CreateRequest) (attendance.CreateResponse, error)
}
