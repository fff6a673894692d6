package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine)
}

func newTestRouter(handlers ...routeRegistrar) *gin.Engine {
	router := gin.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object in body, got: %s", w.Body.String())
	}
	return errObj
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
