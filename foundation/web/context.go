package web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context wraps the gin context with the request scoped context.Context and
// the parameter errors collected while reading the request.
type Context struct {
	*gin.Context
	Ctx context.Context

	log         *log.Logger
	paramErrors []FieldError
	queryErrors []FieldError
}

// GetParam reads the path parameter key as the given kind. Conversion
// failures are collected and reported by ValidParam; the zero value of the
// kind is returned in that case.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	value := c.Param(key)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{
				Field: key,
				Error: fmt.Sprintf("%s must be an integer", key),
			})
			return 0
		}
		return v
	default:
		return value
	}
}

// ValidParam reports the errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) > 0 {
		return NewValidationError(c.paramErrors)
	}

	return nil
}

// GetQueryFunc reads the optional query parameter key and returns a pointer of
// the given kind, or nil when the parameter is absent or empty. Conversion
// failures are collected and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{
				Field: key,
				Error: fmt.Sprintf("%s must be an integer", key),
			})
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{
				Field: key,
				Error: fmt.Sprintf("%s must be a boolean", key),
			})
			return nil
		}
		return &v
	default:
		return &value
	}
}

// ValidQuery reports the errors collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) > 0 {
		return NewValidationError(c.queryErrors)
	}

	return nil
}

// BindFunc decodes the JSON body into data and checks that the named struct
// fields are set. Names may be passed separately or comma separated.
func (c *Context) BindFunc(data interface{}, required ...string) error {
	if err := c.ShouldBindJSON(data); err != nil && !errors.Is(err, io.EOF) {
		return &Error{
			Err:    errors.Wrap(err, "invalid request body"),
			Status: http.StatusUnprocessableEntity,
		}
	}

	v := reflect.Indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldError
	for _, names := range required {
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			sf, ok := v.Type().FieldByName(name)
			if !ok {
				continue
			}

			if v.FieldByIndex(sf.Index).IsZero() {
				field := jsonName(sf)
				fields = append(fields, FieldError{
					Field: field,
					Error: fmt.Sprintf("%s is required", field),
				})
			}
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}

	return nil
}

// Respond converts a Go value to JSON and sends it to the client. A 204
// status writes no body.
func (c *Context) Respond(data interface{}, statusCode int) error {
	if v, ok := c.Ctx.Value(KeyValues).(*Values); ok {
		v.StatusCode = statusCode
	}

	if statusCode == http.StatusNoContent || data == nil {
		c.Status(statusCode)
		return nil
	}

	c.JSON(statusCode, data)

	return nil
}

// RespondError sends an error response back to the client. Errors that are
// not request errors are logged and reported as a generic server error.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) && webErr.Status < http.StatusInternalServerError {
		return c.Respond(map[string]interface{}{
			"error":  webErr.Err.Error(),
			"fields": webErr.Fields,
			"status": false,
		}, webErr.Status)
	}

	status := StatusOf(err)
	if c.log != nil {
		c.log.Printf("%s : ERROR : %+v", c.TraceID(), err)
	}

	return c.Respond(map[string]interface{}{
		"error":  http.StatusText(status),
		"status": false,
	}, status)
}

// TraceID returns the id assigned to the current request.
func (c *Context) TraceID() string {
	if v, ok := c.Ctx.Value(KeyValues).(*Values); ok {
		return v.TraceID
	}

	return ""
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return sf.Name
	}

	return strings.Split(tag, ",")[0]
}
