package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/rest/handlers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer mounts mw in front of a handler that answers 200 "ok" on
// GET /api/resource.
func newTestServer(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(testLogger())
	e.GET("/api/resource", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, mw...)
	return e
}

func newRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "198.51.100.10:41000"
	return req
}

func serveRequest(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// requestFrom sends GET /api/resource from ip.
func requestFrom(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := newRequest(http.MethodGet, "/api/resource")
	req.RemoteAddr = ip + ":41000"
	return serveRequest(e, req)
}
