package statistics

import (
	"bytes"
	"net/http"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/service"
)

type Controller struct {
	statistics Statistics
}

func NewController(statistics Statistics) *Controller {
	return &Controller{statistics}
}

func (uc Controller) Get(c *web.Context) error {
	response, err := uc.statistics.Get(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Report(c *web.Context) error {
	response, err := uc.statistics.Get(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteStatisticsPDF(&buf, response, web.Now(c.Ctx)); err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="attendance_report.pdf"`)
	c.Data(http.StatusOK, service.PDFContentType, buf.Bytes())

	return nil
}
