package statistics

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/database"
)

type Repository struct {
	*database.Database
}

func NewRepository(database *database.Database) *Repository {
	return &Repository{Database: database}
}

// Get computes the dashboard figures from one consistent snapshot.
func (r Repository) Get(ctx context.Context) (GetResponse, error) {
	response := GetResponse{EmployeeStats: make([]EmployeeStatistic, 0)}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error

		if response.TotalEmployees, err = tx.NewSelect().Model((*entity.Employee)(nil)).Count(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "counting employees"), http.StatusInternalServerError)
		}

		if response.TotalAttendanceRecords, err = tx.NewSelect().Model((*entity.Attendance)(nil)).Count(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "counting attendance"), http.StatusInternalServerError)
		}

		if response.TotalPresent, err = tx.NewSelect().Model((*entity.Attendance)(nil)).
			Where("status = ?", entity.StatusPresent).
			Count(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "counting present"), http.StatusInternalServerError)
		}

		err = tx.NewSelect().
			TableExpr("employees AS e").
			ColumnExpr("e.employee_id, e.full_name AS employee_name").
			ColumnExpr("COUNT(a.id) AS present_days").
			Join("LEFT JOIN attendance AS a ON a.employee_id = e.id AND a.status = ?", entity.StatusPresent).
			GroupExpr("e.id, e.employee_id, e.full_name").
			OrderExpr("e.id ASC").
			Scan(ctx, &response.EmployeeStats)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting employee stats"), http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		return GetResponse{}, err
	}

	return response, nil
}
