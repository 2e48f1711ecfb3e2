package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandlingMiddleware_NoPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(zap.New(core))(handler).ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
	assert.Equal(t, 0, logs.Len())
}

func TestErrorHandlingMiddleware_PanicRegularRequest(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(zap.New(core))(handler).ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Something went wrong. Please try again.\n", rr.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("PANIC").Len())
}

func TestErrorHandlingMiddleware_PanicHTMXRequest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	req := httptest.NewRequest("POST", "/checkout/complete", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(zap.NewNop())(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "#messages", rr.Header().Get("HX-Retarget"))
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFoundHandler().ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	MethodNotAllowedHandler().ServeHTTP(rr, httptest.NewRequest("DELETE", "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
