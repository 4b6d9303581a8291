package router

import (
	"net/http"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/middleware"
	"hrms/backend/internal/pkg/notify"
	"hrms/backend/internal/pkg/repository/database"
	"hrms/backend/internal/repository/storage/attendance"
	"hrms/backend/internal/repository/storage/employee"
	"hrms/backend/internal/repository/storage/statistics"

	attendance_controller "hrms/backend/internal/controller/http/v1/attendance"
	employee_controller "hrms/backend/internal/controller/http/v1/employee"
	statistics_controller "hrms/backend/internal/controller/http/v1/statistics"
)

type Router struct {
	*web.App
	db             *database.Database
	events         *notify.Notifier
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	db *database.Database,
	events *notify.Notifier,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		db,
		events,
		allowedOrigins,
	}
}

func (r Router) Init() {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.allowedOrigins))

	// - store
	employeeStore := employee.NewRepository(r.db)
	attendanceStore := attendance.NewRepository(r.db)
	statisticsStore := statistics.NewRepository(r.db)

	// controller
	employeeController := employee_controller.NewController(employeeStore, r.events)
	attendanceController := attendance_controller.NewController(attendanceStore, r.events)
	statisticsController := statistics_controller.NewController(statisticsStore)

	r.Get("/", func(c *web.Context) error {
		return c.Respond(map[string]string{"message": "HRMS Lite API"}, http.StatusOK)
	})
	r.Get("/health", func(c *web.Context) error {
		if err := r.db.PingContext(c.Ctx); err != nil {
			return c.RespondError(err)
		}
		if err := r.events.Ping(c.Ctx); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{
			"data":   map[string]string{"database": string(r.db.Driver())},
			"status": true,
		}, http.StatusOK)
	})

	// #employee
	r.Get("/api/employees", employeeController.GetList)
	r.Post("/api/employees", employeeController.Create)
	r.Get("/api/employees/export", employeeController.Export)
	r.Post("/api/employees/import", employeeController.Import)
	r.Get("/api/employees/:id", employeeController.GetDetailById)
	r.Get("/api/employees/:id/qrcode", employeeController.GetQrCode)
	r.Delete("/api/employees/:id", employeeController.Delete)

	// #attendance
	r.Get("/api/attendance", attendanceController.GetList)
	r.Post("/api/attendance", attendanceController.Create)
	r.Get("/api/attendance/export", attendanceController.Export)
	r.Get("/api/attendance/employee/:id", attendanceController.GetListByEmployee)

	// #stats
	r.Get("/api/stats", statisticsController.Get)
	r.Get("/api/stats/report", statisticsController.Report)
}
