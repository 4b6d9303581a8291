package employee

import (
	"context"

	"hrms/backend/internal/repository/storage/employee"
)

type Employee interface {
	GetList(ctx context.Context) ([]employee.GetListResponse, error)
	GetDetailById(ctx context.Context, id int) (employee.GetDetailByIdResponse, error)
	Create(ctx context.Context, request employee.CreateRequest) (employee.CreateResponse, error)
	Delete(ctx context.Context, id int) error
}
