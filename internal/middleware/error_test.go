package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestID())
	app.Use(RequestLogger())
	app.Get("/test", handler)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantReason  string
	}{
		{
			name:        "not found",
			err:         domain.NewQuestionNotFoundError(1000),
			wantStatus:  http.StatusNotFound,
			wantMessage: "resource not found",
			wantReason:  "question not found with ID: 1000",
		},
		{
			name:        "unprocessable",
			err:         domain.NewUnprocessableError("bad quiz category"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "unprocessable",
			wantReason:  "bad quiz category",
		},
		{
			name:        "bad request",
			err:         domain.NewBadRequestError("malformed JSON body"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "bad request",
			wantReason:  "malformed JSON body",
		},
		{
			name:        "internal hides cause",
			err:         domain.NewInternalError("failed to list questions", errors.New("password authentication failed")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
		{
			name:        "unavailable",
			err:         domain.NewUnavailableError("database unreachable", errors.New("dial tcp")),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "service unavailable",
		},
		{
			name:        "fiber error",
			err:         fiber.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "method not allowed",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tt.wantStatus), body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])

			if tt.wantReason != "" {
				details, ok := body["details"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, tt.wantReason, details["reason"])
			} else {
				assert.NotContains(t, body, "details")
			}
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	verrs := domain.ValidationErrors{
		domain.NewMissingFieldError("answer"),
		domain.NewOutOfRangeError("difficulty", 9, 1, 5),
	}

	for name, err := range map[string]error{
		"raw":     verrs,
		"wrapped": domain.NewValidationFailedError(verrs),
	} {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(func(c *fiber.Ctx) error { return err })

			resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
			require.NoError(t, reqErr)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, "unprocessable", body["message"])

			details := body["details"].(map[string]interface{})
			fieldErrs := details["errors"].([]interface{})
			require.Len(t, fieldErrs, 2)
			assert.Equal(t, "answer", fieldErrs[0].(map[string]interface{})["field"])
			assert.Equal(t, "difficulty", fieldErrs[1].(map[string]interface{})["field"])
		})
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error { return nil })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "resource not found", body["message"])
}

func TestRequestID(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return c.SendString(requestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, util.IsULID(string(body)))
		assert.Equal(t, string(body), resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("client ulid kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(fiber.HeaderXRequestID, "01ARZ3NDEKTSV4RRFFQ69G5FAV")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("client garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(fiber.HeaderXRequestID, "<script>")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.True(t, util.IsULID(resp.Header.Get(fiber.HeaderXRequestID)))
	})
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "unprocessable", StatusMessage(http.StatusUnprocessableEntity))
	assert.Equal(t, "conflict", StatusMessage(http.StatusConflict))
}
