package statistics

type GetResponse struct {
	TotalEmployees         int                 `json:"total_employees"`
	TotalAttendanceRecords int                 `json:"total_attendance_records"`
	TotalPresent           int                 `json:"total_present"`
	EmployeeStats          []EmployeeStatistic `json:"employee_stats"`
}

type EmployeeStatistic struct {
	EmployeeID   string `json:"employee_id"   bun:"employee_id"`
	EmployeeName string `json:"employee_name" bun:"employee_name"`
	PresentDays  int    `json:"present_days"  bun:"present_days"`
}
