package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"examcracker/internal/auth"
	"examcracker/internal/model"
	"examcracker/internal/service"
	serviceMocks "examcracker/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testGate   = auth.NewGate(auth.PlainVerifier{Username: "praveen", Password: "PRAVEEN@1234"})
	testIssuer = auth.NewTokenIssuer("test-secret", time.Hour)
)

func newTestApp(catalog service.CatalogService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, nil, testGate, testIssuer, catalog)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSession(t *testing.T, req *http.Request, id auth.Identity) *http.Request {
	t.Helper()
	token, err := testIssuer.Issue(id)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLogin(t *testing.T) {
	app := newTestApp(nil)

	t.Run("admin credentials", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login",
			map[string]string{"username": "praveen", "password": "PRAVEEN@1234"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["is_admin"])
		assert.Equal(t, "praveen", body["username"])

		var sessionCookie *http.Cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == auth.SessionCookie {
				sessionCookie = ck
			}
		}
		require.NotNil(t, sessionCookie)
		assert.True(t, sessionCookie.HttpOnly)
	})

	t.Run("any other pair is a regular user", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login",
			map[string]string{"username": "alice", "password": "x"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, false, body["is_admin"])
		assert.Equal(t, "alice", body["username"])
	})

	t.Run("empty credentials are rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login",
			map[string]string{"username": "", "password": ""}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Please enter username and password", body["message"])
	})
}

func TestLogoutAndCheckAuth(t *testing.T) {
	app := newTestApp(nil)

	t.Run("anonymous check-auth", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/check-auth", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("authenticated check-auth", func(t *testing.T) {
		req := withSession(t, httptest.NewRequest(http.MethodGet, "/api/check-auth", nil),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["authenticated"])
		assert.Equal(t, "praveen", body["username"])
		assert.Equal(t, true, body["is_admin"])
	})

	t.Run("logout expires the cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/logout", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])

		for _, ck := range resp.Cookies() {
			if ck.Name == auth.SessionCookie {
				assert.True(t, ck.Expires.Before(time.Now()))
			}
		}
	})
}

func TestAdminGate(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := newTestApp(mockSvc)

	mutating := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/subjects/1/subsections"},
		{http.MethodDelete, "/api/subsections/1"},
		{http.MethodPost, "/api/subsections/1/documents"},
		{http.MethodDelete, "/api/documents/1"},
		{http.MethodPost, "/api/subjects/1/questions"},
		{http.MethodDelete, "/api/questions/1"},
	}

	t.Run("anonymous gets 403", func(t *testing.T) {
		for _, m := range mutating {
			resp, err := app.Test(jsonRequest(m.method, m.target, map[string]string{"name": "x"}))
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", m.method, m.target)

			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Admin access required", body["message"])
		}
	})

	t.Run("regular session gets 403", func(t *testing.T) {
		for _, m := range mutating {
			req := withSession(t, jsonRequest(m.method, m.target, map[string]string{"name": "x"}),
				auth.Identity{Username: "alice", IsAdmin: false})
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", m.method, m.target)
		}
	})
}

func TestListSubjects(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := newTestApp(mockSvc)

	mockSvc.On("ListSubjects", mock.Anything).Return([]model.Subject{
		{ID: 1, Name: "தமிழ்", Icon: "fa-book", DisplayOrder: 1},
		{ID: 2, Name: "English", Icon: "fa-book", DisplayOrder: 2},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/subjects", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var subjects []model.Subject
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&subjects))
	require.Len(t, subjects, 2)
	assert.Equal(t, "தமிழ்", subjects[0].Name)
	mockSvc.AssertExpectations(t)
}

func TestCreateSubsection(t *testing.T) {
	t.Run("admin creates subsection", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCatalogService)
		app := newTestApp(mockSvc)

		mockSvc.On("CreateSubsection", mock.Anything, int64(2), "Grammar", "fa-pen").
			Return(int64(7), nil)

		req := withSession(t, jsonRequest(http.MethodPost, "/api/subjects/2/subsections",
			map[string]string{"name": "Grammar", "icon": "fa-pen"}),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(7), body["id"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name answers 400", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCatalogService)
		app := newTestApp(mockSvc)

		mockSvc.On("CreateSubsection", mock.Anything, int64(2), "", "").
			Return(int64(0), service.ErrNameRequired)

		req := withSession(t, jsonRequest(http.MethodPost, "/api/subjects/2/subsections",
			map[string]string{}),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
	})
}

func TestDeleteEndpointsNotFound(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := newTestApp(mockSvc)

	mockSvc.On("DeleteSubsection", mock.Anything, int64(404)).Return(service.ErrNotFound)
	mockSvc.On("DeleteDocument", mock.Anything, int64(404)).Return(service.ErrNotFound)
	mockSvc.On("DeleteQuestionPaper", mock.Anything, int64(404)).Return(service.ErrNotFound)

	for _, target := range []string{"/api/subsections/404", "/api/documents/404", "/api/questions/404"} {
		req := withSession(t, httptest.NewRequest(http.MethodDelete, target, nil),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
	}
	mockSvc.AssertExpectations(t)
}

func TestCreateDocument(t *testing.T) {
	t.Run("cloud upload failure embeds upstream text", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCatalogService)
		app := newTestApp(mockSvc)

		mockSvc.On("CreateDocument", mock.Anything, int64(5), mock.Anything).
			Return(int64(0), errors.New("cloud upload failed: quota exceeded"))

		req := withSession(t, jsonRequest(http.MethodPost, "/api/subsections/5/documents",
			map[string]string{"name": "Notes", "upload_method": "cloud-file", "file_data": "aGVsbG8="}),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["message"], "quota exceeded")
	})

	t.Run("link upload succeeds", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCatalogService)
		app := newTestApp(mockSvc)

		mockSvc.On("CreateDocument", mock.Anything, int64(5), service.MaterialInput{
			Name:         "Notes",
			Link:         "https://example.com/n.pdf",
			UploadMethod: "link",
		}).Return(int64(11), nil)

		req := withSession(t, jsonRequest(http.MethodPost, "/api/subsections/5/documents",
			map[string]string{"name": "Notes", "link": "https://example.com/n.pdf", "upload_method": "link"}),
			auth.Identity{Username: "praveen", IsAdmin: true})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(11), body["id"])
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateQuestionPaperPassesSubsection(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := newTestApp(mockSvc)

	mockSvc.On("CreateQuestionPaper", mock.Anything, int64(1),
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 4 }),
		mock.Anything).Return(int64(21), nil)

	req := withSession(t, jsonRequest(http.MethodPost, "/api/subjects/1/questions",
		map[string]any{"name": "2024 Half-Yearly", "link": "https://example.com/p.pdf", "subsection_id": 4}),
		auth.Identity{Username: "praveen", IsAdmin: true})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDatabaseNotConfigured(t *testing.T) {
	// nil catalog means no database; every data endpoint answers 500 while
	// auth endpoints keep working.
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/subjects", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Database not configured", body["message"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/login",
		map[string]string{"username": "alice", "password": "x"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvalidIDAnswers400(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := newTestApp(mockSvc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/subjects/abc/subsections", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		app := fiber.New()
		app.Get("/health", HealthCheck(db))

		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		app := fiber.New()
		app.Get("/health", HealthCheck(db))

		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("no database configured", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
