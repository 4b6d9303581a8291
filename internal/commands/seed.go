package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"hrms/backend/internal/pkg/repository/database"
	"hrms/backend/internal/repository/storage"
	"hrms/backend/internal/repository/storage/attendance"
	"hrms/backend/internal/repository/storage/employee"
)

type SeedFile struct {
	Employees []SeedEmployee `yaml:"employees"`
}

type SeedEmployee struct {
	employee.CreateRequest `yaml:",inline"`

	Attendance []SeedMark `yaml:"attendance"`
}

type SeedMark struct {
	Date   string `yaml:"date"`
	Status string `yaml:"status"`
}

type SeedResult struct {
	Employees         int
	EmployeesSkipped  int
	Attendance        int
	AttendanceSkipped int
}

func (r SeedResult) String() string {
	return fmt.Sprintf("employees: %d created, %d skipped; attendance: %d created, %d skipped",
		r.Employees, r.EmployeesSkipped, r.Attendance, r.AttendanceSkipped)
}

// SeedFromFile loads the YAML file at path. See Seed.
func SeedFromFile(ctx context.Context, log *log.Logger, db *database.Database, path string) (SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, errors.Wrap(err, "opening seed file")
	}
	defer f.Close()

	return Seed(ctx, log, db, f)
}

// Seed creates the employees and attendance marks described in r through the
// repositories. Records rejected as duplicates are skipped; any other failure
// stops the import.
func Seed(ctx context.Context, log *log.Logger, db *database.Database, r io.Reader) (SeedResult, error) {
	var (
		file   SeedFile
		result SeedResult
	)

	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return result, errors.Wrap(err, "decoding seed file")
	}

	employees := employee.NewRepository(db)
	marks := attendance.NewRepository(db)

	for i, e := range file.Employees {
		created, err := employees.Create(ctx, e.CreateRequest)
		id := created.ID

		switch {
		case err == nil:
			result.Employees++
		case errors.Is(err, storage.ErrEmployeeIDExists):
			result.EmployeesSkipped++
			existing, gerr := employees.GetByEmployeeID(ctx, strings.TrimSpace(e.EmployeeID))
			if gerr != nil {
				return result, errors.Wrapf(gerr, "employee %d: looking up %q", i+1, e.EmployeeID)
			}
			id = existing.ID
		case errors.Is(err, storage.ErrEmailExists):
			log.Printf("seed: employee %q skipped: %v", e.EmployeeID, err)
			result.EmployeesSkipped++
			result.AttendanceSkipped += len(e.Attendance)
			continue
		default:
			return result, errors.Wrapf(err, "employee %d (%q)", i+1, e.EmployeeID)
		}

		for _, m := range e.Attendance {
			day, err := date.ParseDate(m.Date)
			if err != nil {
				return result, errors.Wrapf(err, "employee %q: attendance date %q", e.EmployeeID, m.Date)
			}

			_, err = marks.Create(ctx, attendance.CreateRequest{EmployeeID: &id, Date: &day, Status: m.Status})
			switch {
			case err == nil:
				result.Attendance++
			case errors.Is(err, storage.ErrAttendanceExists):
				result.AttendanceSkipped++
			default:
				return result, errors.Wrapf(err, "employee %q: attendance %s", e.EmployeeID, m.Date)
			}
		}
	}

	return result, nil
}
