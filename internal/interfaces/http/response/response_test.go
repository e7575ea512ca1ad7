package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, gin.H{"id": "abc"})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "abc", body["id"])
}

func TestError_AppErrorStatusPreserved(t *testing.T) {
	w := recordError(t, domainerrors.NotFound("merchant not found"))
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "merchant not found", body["message"])
}

func TestError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound},
		{domainerrors.ErrInvalidInput, http.StatusBadRequest},
		{domainerrors.ErrInvalidTimeRange, http.StatusBadRequest},
		{domainerrors.ErrAlreadyExists, http.StatusConflict},
		{domainerrors.ErrUnauthorized, http.StatusUnauthorized},
		{domainerrors.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := recordError(t, tc.err)
		require.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestError_WrappedSentinel(t *testing.T) {
	w := recordError(t, errors.New("wrapped: "+domainerrors.ErrNotFound.Error()))
	// message similarity is not enough; only errors.Is chains map
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = recordError(t, wrap(domainerrors.ErrNotFound))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func wrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "context: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

func TestErrorWithStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithStatus(c, http.StatusTeapot, "short and stout")
	require.Equal(t, http.StatusTeapot, w.Code)
}
