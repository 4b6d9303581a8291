package service

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"hrms/backend/internal/repository/storage/attendance"
	"hrms/backend/internal/repository/storage/employee"
)

const (
	EmployeeSheet   = "Employees"
	AttendanceSheet = "Attendance"

	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteEmployeesExcel writes one header row and one row per employee.
func WriteEmployeesExcel(w io.Writer, employees []employee.GetListResponse) error {
	rows := make([][]interface{}, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []interface{}{e.ID, e.EmployeeID, e.FullName, e.Email, e.Department})
	}

	return writeSheet(w, EmployeeSheet,
		[]interface{}{"ID", "Employee ID", "Full Name", "Email", "Department"}, rows)
}

// WriteAttendanceExcel keeps the order of list, newest first.
func WriteAttendanceExcel(w io.Writer, list []attendance.GetListResponse) error {
	rows := make([][]interface{}, 0, len(list))
	for _, a := range list {
		rows = append(rows, []interface{}{a.ID, a.Date.String(), a.EmployeeEmployeeID, a.EmployeeName, a.Status})
	}

	return writeSheet(w, AttendanceSheet,
		[]interface{}{"ID", "Date", "Employee ID", "Employee Name", "Status"}, rows)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	if err = f.SetColWidth(sheet, "B", "E", 22); err != nil {
		return errors.Wrap(err, "sizing columns")
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}

// ImportRow is one data row of an employee workbook. Line is its 1-based
// spreadsheet row.
type ImportRow struct {
	Line    int
	Request employee.CreateRequest
}

// ReadEmployeesExcel reads a workbook in the layout WriteEmployeesExcel
// produces. The first row is a header and the ID column is ignored. Rows with
// missing cells are returned as incomplete line numbers.
func ReadEmployeesExcel(r io.Reader) ([]ImportRow, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading workbook")
	}
	defer f.Close()

	sheet := EmployeeSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	var (
		list       []ImportRow
		incomplete []int
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 5 {
			if strings.TrimSpace(strings.Join(row, "")) != "" {
				incomplete = append(incomplete, i+1)
			}
			continue
		}

		list = append(list, ImportRow{
			Line: i + 1,
			Request: employee.CreateRequest{
				EmployeeID: row[1],
				FullName:   row[2],
				Email:      row[3],
				Department: row[4],
			},
		})
	}

	return list, incomplete, nil
}
