package attendance

import (
	"bytes"
	"net/http"
	"reflect"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/pkg/notify"
	"hrms/backend/internal/repository/storage/attendance"
	"hrms/backend/internal/service"
)

type Controller struct {
	attendance Attendance
	events     *notify.Notifier
}

func NewController(attendance Attendance, events *notify.Notifier) *Controller {
	return &Controller{attendance, events}
}

func (uc Controller) filter(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	// ids start at 1, so zero and below mean every employee
	if employeeID, ok := c.GetQueryFunc(reflect.Int, "employee_id").(*int); ok && *employeeID > 0 {
		filter.EmployeeID = employeeID
	}

	return filter, c.ValidQuery()
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetListByEmployee(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetListByEmployee(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request attendance.CreateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.events.Notify(c.Ctx, notify.Event{
		Type:         notify.AttendanceCreated,
		EmployeeID:   response.EmployeeID,
		AttendanceID: response.ID,
		Date:         response.Date.String(),
		Status:       response.Status,
	})

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Export(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteAttendanceExcel(&buf, list); err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	c.Data(http.StatusOK, service.ExcelContentType, buf.Bytes())

	return nil
}
