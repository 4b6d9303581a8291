package service

import (
	"bytes"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrms/backend/internal/repository/storage/attendance"
	"hrms/backend/internal/repository/storage/employee"
	"hrms/backend/internal/repository/storage/statistics"
)

func TestWriteEmployeesExcel(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEmployeesExcel(&buf, []employee.GetListResponse{
		{ID: 1, EmployeeID: "E001", FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering"},
		{ID: 2, EmployeeID: "E002", FullName: "Grace Hopper", Email: "grace@example.com", Department: "Research"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(EmployeeSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Employee ID", "Full Name", "Email", "Department"}, rows[0])
	assert.Equal(t, []string{"1", "E001", "Ada Lovelace", "ada@example.com", "Engineering"}, rows[1])
	assert.Equal(t, "Grace Hopper", rows[2][2])
}

func TestWriteAttendanceExcel(t *testing.T) {
	d, err := date.ParseDate("2024-01-02")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceExcel(&buf, []attendance.GetListResponse{
		{ID: 7, EmployeeID: 1, Date: d, Status: "Absent", EmployeeName: "Ada Lovelace", EmployeeEmployeeID: "E001"},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"7", "2024-01-02", "E001", "Ada Lovelace", "Absent"}, rows[1])
}

func TestWriteExcelEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeesExcel(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(EmployeeSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteStatisticsPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatisticsPDF(&buf, statistics.GetResponse{
		TotalEmployees:         1,
		TotalAttendanceRecords: 2,
		TotalPresent:           1,
		EmployeeStats: []statistics.EmployeeStatistic{
			{EmployeeID: "E001", EmployeeName: "José Martín", PresentDays: 1},
		},
	}, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestEmployeeQRCode(t *testing.T) {
	data, err := EmployeeQRCode("E001")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, QRCodeSize, img.Bounds().Dx())
	assert.Equal(t, QRCodeSize, img.Bounds().Dy())
}

func TestReadEmployeesExcelRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeesExcel(&buf, []employee.GetListResponse{
		{ID: 1, EmployeeID: "E001", FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering"},
		{ID: 2, EmployeeID: "E002", FullName: "Grace Hopper", Email: "grace@example.com", Department: "Research"},
	}))

	rows, incomplete, err := ReadEmployeesExcel(&buf)
	require.NoError(t, err)
	assert.Empty(t, incomplete)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, employee.CreateRequest{
		EmployeeID: "E002", FullName: "Grace Hopper", Email: "grace@example.com", Department: "Research",
	}, rows[1].Request)
}

func TestReadEmployeesExcelIncomplete(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"ID", "Employee ID", "Full Name", "Email", "Department"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"", "E001", "Ada"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"", "E002", "Grace", "grace@example.com", "Research"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, incomplete, err := ReadEmployeesExcel(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, incomplete)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Line)
}

func TestOpenSpreadsheetRejects(t *testing.T) {
	_, err := OpenSpreadsheet(nil)
	assert.Error(t, err)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", "image/png")
	_, err = OpenSpreadsheet(&multipart.FileHeader{Filename: "x.png", Header: header, Size: 10})
	assert.Error(t, err)

	_, err = OpenSpreadsheet(&multipart.FileHeader{Filename: "big.xlsx", Size: MaxUploadSize + 1})
	assert.Error(t, err)
}

func TestInArray(t *testing.T) {
	assert.True(t, InArray("b", []string{"a", "b"}))
	assert.False(t, InArray(3, []int{1, 2}))
}
