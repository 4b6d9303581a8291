package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(mw ...Middleware) *App {
	return NewApp(log.New(io.Discard, "", 0), mw...)
}

func serve(t *testing.T, app *App, method, target string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func TestGetParam(t *testing.T) {
	app := newTestApp()
	app.Get("/items/:id", func(c *Context) error {
		id := c.GetParam(reflect.Int, "id").(int)
		if err := c.ValidParam(); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"data": id, "status": true}, http.StatusOK)
	})

	rec, body := serve(t, app, http.MethodGet, "/items/42", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), body["data"])

	rec, body = serve(t, app, http.MethodGet, "/items/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "id must be an integer", body["error"])
	assert.Equal(t, false, body["status"])
}

func TestGetQueryFunc(t *testing.T) {
	app := newTestApp()
	app.Get("/items", func(c *Context) error {
		limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int)
		if err := c.ValidQuery(); err != nil {
			return c.RespondError(err)
		}
		if !ok {
			return c.Respond(map[string]interface{}{"data": nil, "status": true}, http.StatusOK)
		}
		return c.Respond(map[string]interface{}{"data": *limit, "status": true}, http.StatusOK)
	})

	_, body := serve(t, app, http.MethodGet, "/items?limit=5", nil)
	assert.Equal(t, float64(5), body["data"])

	_, body = serve(t, app, http.MethodGet, "/items", nil)
	assert.Nil(t, body["data"])

	rec, _ := serve(t, app, http.MethodGet, "/items?limit=x", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBindFunc(t *testing.T) {
	type request struct {
		Name  string `json:"name"`
		Count *int   `json:"count"`
	}

	app := newTestApp()
	app.Post("/items", func(c *Context) error {
		var r request
		if err := c.BindFunc(&r, "Name,Count"); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"data": r.Name, "status": true}, http.StatusCreated)
	})

	rec, body := serve(t, app, http.MethodPost, "/items", []byte(`{"name":"a","count":0}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "a", body["data"])

	rec, body = serve(t, app, http.MethodPost, "/items", []byte(`{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "name is required", body["error"])
	assert.Len(t, body["fields"], 2)

	rec, _ = serve(t, app, http.MethodPost, "/items", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = serve(t, app, http.MethodPost, "/items", []byte(`{"name":`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRespondError(t *testing.T) {
	app := newTestApp()
	app.Get("/conflict", func(c *Context) error {
		return c.RespondError(NewRequestError(errors.New("already exists"), http.StatusBadRequest))
	})
	app.Get("/boom", func(c *Context) error {
		return c.RespondError(errors.New("connection refused"))
	})

	rec, body := serve(t, app, http.MethodGet, "/conflict", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "already exists", body["error"])

	rec, body = serve(t, app, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestRespondNoContent(t *testing.T) {
	app := newTestApp()
	app.Delete("/items/1", func(c *Context) error {
		return c.Respond(nil, http.StatusNoContent)
	})

	rec, _ := serve(t, app, http.MethodDelete, "/items/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(c *Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := newTestApp(mark("app"))
	app.Get("/", func(c *Context) error {
		order = append(order, "handler")
		return c.Respond(nil, http.StatusNoContent)
	}, mark("route"))

	serve(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, []string{"app", "route", "handler"}, order)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(errors.Wrap(NewRequestError(errors.New("x"), http.StatusNotFound), "wrapped")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("x")))
}

func TestNow(t *testing.T) {
	app := newTestApp()

	var got time.Time
	app.Get("/now", func(c *Context) error {
		got = Now(c.Ctx)
		return c.Respond(nil, http.StatusNoContent)
	})

	before := time.Now()
	serve(t, app, http.MethodGet, "/now", nil)

	assert.False(t, got.Before(before))
	assert.WithinDuration(t, before, Now(context.Background()), time.Minute)
}
