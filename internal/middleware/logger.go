package middleware

import (
	"log"
	"time"

	"hrms/backend/foundation/web"
)

// Logger writes one line per request once the handler has finished.
func Logger(log *log.Logger) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			start := time.Now()

			err := handler(c)

			log.Printf("%s : (%d) : %s %s -> %s (%s)",
				c.TraceID(), c.Writer.Status(),
				c.Request.Method, c.Request.URL.Path,
				c.ClientIP(), time.Since(start),
			)

			return err
		}
	}
}
