package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
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

// GetList returns attendance newest first, optionally for one employee.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	return list(ctx, r.DB, filter)
}

// GetListByEmployee is GetList for an employee that must exist.
func (r Repository) GetListByEmployee(ctx context.Context, employeeID int) ([]GetListResponse, error) {
	var response []GetListResponse

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Employee)(nil)).Where("id = ?", employeeID).Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking employee"), http.StatusInternalServerError)
		}
		if !exists {
			return web.NewRequestError(storage.ErrEmployeeNotFound, http.StatusNotFound)
		}

		response, err = list(ctx, tx, Filter{EmployeeID: &employeeID})
		return err
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if err := validation.Validate(
		validation.Required("employee_id", request.EmployeeID != nil),
		validation.Required("date", request.Date != nil),
		validation.OneOf("status", "Status", request.Status, entity.Statuses...),
	); err != nil {
		return CreateResponse{}, err
	}

	day := Day(request.Date.Time)
	response := CreateResponse{
		EmployeeID: *request.EmployeeID,
		Day:        day.Format(entity.DateLayout),
		Date:       date.Date{Time: day},
		Status:     request.Status,
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		var emp entity.Employee
		err := tx.NewSelect().Model(&emp).Where("id = ?", response.EmployeeID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(storage.ErrEmployeeNotFound, http.StatusNotFound)
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
		}

		exists, err := tx.NewSelect().Model((*entity.Attendance)(nil)).
			Where("employee_id = ?", response.EmployeeID).
			Where("date = ?", response.Day).
			Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking attendance"), http.StatusInternalServerError)
		}
		if exists {
			return web.NewRequestError(storage.ErrAttendanceExists, http.StatusBadRequest)
		}

		if _, err = tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return insertError(err)
		}

		response.EmployeeName = emp.FullName
		response.EmployeeEmployeeID = emp.EmployeeID

		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}

	return response, nil
}

// insertError maps constraint failures raised when another request wins the
// race between the checks above and the insert.
func insertError(err error) error {
	if _, ok := database.UniqueViolation(err); ok {
		return web.NewRequestError(storage.ErrAttendanceExists, http.StatusBadRequest)
	}
	if database.ForeignKeyViolation(err) {
		return web.NewRequestError(storage.ErrEmployeeNotFound, http.StatusNotFound)
	}

	return web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusInternalServerError)
}

// Day reduces t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func list(ctx context.Context, db bun.IDB, filter Filter) ([]GetListResponse, error) {
	var rows []listRow

	q := db.NewSelect().
		TableExpr("attendance AS a").
		ColumnExpr("a.id, a.employee_id, a.date, a.status").
		ColumnExpr("e.full_name AS employee_name, e.employee_id AS employee_employee_id").
		Join("JOIN employees AS e ON e.id = a.employee_id")

	if filter.EmployeeID != nil {
		q = q.Where("a.employee_id = ?", *filter.EmployeeID)
	}

	err := q.OrderExpr("a.date DESC, a.id DESC").Scan(ctx, &rows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	response := make([]GetListResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, GetListResponse{
			ID:                 row.ID,
			EmployeeID:         row.EmployeeID,
			Date:               date.Date{Time: Day(row.Date)},
			Status:             row.Status,
			EmployeeName:       row.EmployeeName,
			EmployeeEmployeeID: row.EmployeeEmployeeID,
		})
	}

	return response, nil
}
