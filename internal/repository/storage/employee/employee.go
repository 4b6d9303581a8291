package employee

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/database"
	"hrms/backend/internal/pkg/validation"
	"hrms/backend/internal/repository/storage"
)

type Repository struct {
	*database.Database
}

func NewRepository(database *database.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)

	return detail, err
}

func (r Repository) GetByEmployeeID(ctx context.Context, employeeID string) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("employee_id = ?", employeeID).Scan(ctx)

	return detail, err
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	list := make([]GetListResponse, 0)

	if err := r.NewSelect().Model(&list).OrderExpr("id ASC").Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	var detail GetDetailByIdResponse

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(storage.ErrEmployeeNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if err := validation.Validate(
		validation.NotBlank("employee_id", "Employee ID", &request.EmployeeID),
		validation.NotBlank("full_name", "Full name", &request.FullName),
		validation.NotBlank("department", "Department", &request.Department),
		validation.Email("email", &request.Email),
	); err != nil {
		return CreateResponse{}, err
	}

	response := CreateResponse{
		EmployeeID: request.EmployeeID,
		FullName:   request.FullName,
		Email:      request.Email,
		Department: request.Department,
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Employee)(nil)).Where("employee_id = ?", request.EmployeeID).Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking employee_id"), http.StatusInternalServerError)
		}
		if exists {
			return web.NewRequestError(storage.ErrEmployeeIDExists, http.StatusBadRequest)
		}

		exists, err = tx.NewSelect().Model((*entity.Employee)(nil)).Where("email = ?", request.Email).Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking email"), http.StatusInternalServerError)
		}
		if exists {
			return web.NewRequestError(storage.ErrEmailExists, http.StatusBadRequest)
		}

		if _, err = tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return conflictError(err)
		}

		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}

	return response, nil
}

// Delete removes the employee together with its attendance records.
func (r Repository) Delete(ctx context.Context, id int) error {
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Employee)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking employee"), http.StatusInternalServerError)
		}
		if !exists {
			return web.NewRequestError(storage.ErrEmployeeNotFound, http.StatusNotFound)
		}

		if _, err = tx.NewDelete().Model((*entity.Attendance)(nil)).Where("employee_id = ?", id).Exec(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting attendance"), http.StatusInternalServerError)
		}

		if _, err = tx.NewDelete().Model((*entity.Employee)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting employee"), http.StatusInternalServerError)
		}

		return nil
	})
}

// conflictError turns a unique violation raised by a concurrent insert into
// the same conflict the pre-checks report.
func conflictError(err error) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusInternalServerError)
	}

	if strings.Contains(constraint, "email") {
		return web.NewRequestError(storage.ErrEmailExists, http.StatusBadRequest)
	}

	return web.NewRequestError(storage.ErrEmployeeIDExists, http.StatusBadRequest)
}
