package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "ok is info", status: http.StatusOK, expectedLevel: "INFO"},
		{name: "no content is info", status: http.StatusNoContent, expectedLevel: "INFO"},
		{name: "not found is warn", status: http.StatusNotFound, expectedLevel: "WARN"},
		{name: "unprocessable is warn", status: http.StatusUnprocessableEntity, expectedLevel: "WARN"},
		{name: "internal error is error", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := Logging(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/features/reset", nil))

			var entry map[string]any

			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, testCase.expectedLevel, entry["level"])
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, http.MethodPost, entry["method"])
			assert.Equal(t, "/api/features/reset", entry["path"])
			assert.InDelta(t, float64(testCase.status), entry["status"], 0)
		})
	}
}

func TestLogging_BytesAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := RequestID()(Logging(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})))

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set(RequestIDHeader, "trace-7")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.InDelta(t, 200, entry["status"], 0)
	assert.InDelta(t, 11, entry["bytes"], 0)
	assert.Equal(t, "trace-7", entry["request_id"])
	assert.Contains(t, entry, "duration")
}
