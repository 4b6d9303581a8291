package employee

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/pkg/notify"
	"hrms/backend/internal/repository/storage/employee"
	"hrms/backend/internal/service"
)

type Controller struct {
	employee Employee
	events   *notify.Notifier
}

func NewController(employee Employee, events *notify.Notifier) *Controller {
	return &Controller{employee, events}
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.employee.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.events.Notify(c.Ctx, notify.Event{Type: notify.EmployeeCreated, EmployeeID: response.ID})

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	uc.events.Notify(c.Ctx, notify.Event{Type: notify.EmployeeDeleted, EmployeeID: id})

	return c.Respond(nil, http.StatusNoContent)
}

func (uc Controller) Export(c *web.Context) error {
	list, err := uc.employee.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteEmployeesExcel(&buf, list); err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="employees.xlsx"`)
	c.Data(http.StatusOK, service.ExcelContentType, buf.Bytes())

	return nil
}

func (uc Controller) GetQrCode(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.EmployeeQRCode(detail.EmployeeID)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", detail.EmployeeID+".png"))
	c.Data(http.StatusOK, service.PNGContentType, png)

	return nil
}

// Import creates employees from an uploaded workbook. Rows rejected as
// duplicates or invalid are reported by line and do not stop the import.
func (uc Controller) Import(c *web.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxUploadBody)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = errors.Errorf("file is larger than %d bytes", service.MaxUploadSize)
		} else {
			err = errors.Wrap(err, "file is required")
		}
		return c.RespondError(web.NewRequestError(err, http.StatusUnprocessableEntity))
	}

	src, err := service.OpenSpreadsheet(file)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnprocessableEntity))
	}
	defer src.Close()

	rows, incomplete, err := service.ReadEmployeesExcel(src)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnprocessableEntity))
	}

	created := make([]employee.CreateResponse, 0, len(rows))
	rejected := make([]web.FieldError, 0)
	for _, row := range rows {
		response, err := uc.employee.Create(c.Ctx, row.Request)
		if err != nil {
			if web.StatusOf(err) >= http.StatusInternalServerError {
				return c.RespondError(err)
			}
			rejected = append(rejected, web.FieldError{Field: fmt.Sprintf("row %d", row.Line), Error: err.Error()})
			continue
		}

		uc.events.Notify(c.Ctx, notify.Event{Type: notify.EmployeeCreated, EmployeeID: response.ID})
		created = append(created, response)
	}

	for _, line := range incomplete {
		rejected = append(rejected, web.FieldError{Field: fmt.Sprintf("row %d", line), Error: "row is incomplete"})
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":  created,
			"rejected": rejected,
		},
		"status": true,
	}, http.StatusOK)
}
