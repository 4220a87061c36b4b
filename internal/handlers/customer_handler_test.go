package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
	"customers-api/internal/repositories/memory"
	"customers-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func setupRouter(t *testing.T, svc services.CustomerService, exposeDetails bool) *gin.Engine {
	t.Helper()

	if svc == nil {
		store, err := memory.NewCustomerStore(quietLogger())
		require.NoError(t, err)
		svc = services.NewCustomerService(store, quietLogger())
	}

	router := gin.New()
	SetupRoutes(router, &RouterConfig{
		CustomerService: svc,
		ErrorPolicy:     ErrorPolicy{ExposeDetails: exposeDetails, Logger: quietLogger()},
	})
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// stubService fails every operation with err
type stubService struct {
	err error
}

func (s *stubService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return nil, s.err
}
func (s *stubService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return nil, s.err
}
func (s *stubService) CreateCustomer(ctx context.Context, input *models.CustomerInput) (*models.Customer, error) {
	return nil, &services.CreateError{Err: s.err}
}
func (s *stubService) ReplaceCustomer(ctx context.Context, id string, input *models.CustomerInput) (int64, error) {
	return 0, s.err
}
func (s *stubService) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	return 0, s.err
}
func (s *stubService) Ping(ctx context.Context) error { return s.err }

func TestRootRoutes(t *testing.T) {
	router := setupRouter(t, nil, true)

	w := doJSON(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome", w.Body.String())

	w = doJSON(router, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "This is a post request", w.Body.String())
}

func TestCustomerLifecycle(t *testing.T) {
	router := setupRouter(t, nil, true)

	w := doJSON(router, http.MethodPost, "/api/customers", `{"name":"John","industry":"Music"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[CustomerResponse](t, w).Customer
	require.NotNil(t, created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "John", created.Name)
	assert.Equal(t, "Music", created.Industry)

	w = doJSON(router, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[CustomerListResponse](t, w)
	require.Len(t, list.Customers, 1)
	assert.Equal(t, created, list.Customers[0])

	w = doJSON(router, http.MethodPut, "/api/customers/"+created.ID, `{"name":"Johnny"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updatedCount":1}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/customers/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customer":{"id":"`+created.ID+`","name":"Johnny"}}`, w.Body.String())

	w = doJSON(router, http.MethodDelete, "/api/customers/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deletedCount":1}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/customers/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	router := setupRouter(t, nil, true)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		w := doJSON(router, http.MethodPost, "/api/customers", `{"name":"Same","industry":"Same"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		id := decode[CustomerResponse](t, w).Customer.ID
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCreateAcceptsFormBodies(t *testing.T) {
	router := setupRouter(t, nil, true)

	form := url.Values{"name": {"Doe"}, "industry": {"Networking"}}
	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[CustomerResponse](t, w).Customer
	assert.Equal(t, "Doe", created.Name)
	assert.Equal(t, "Networking", created.Industry)
}

func TestCreateRejectsBadInput(t *testing.T) {
	router := setupRouter(t, nil, true)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"industry":"Music"}`, "name is required"},
		{"blank name", `{"name":"   "}`, "name is required"},
		{"wrong type", `{"name":5}`, "cannot unmarshal"},
		{"malformed json", `{"name":`, "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/customers", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[ErrorResponse](t, w).Error, tt.message)
		})
	}

	w := doJSON(router, http.MethodGet, "/api/customers", "")
	assert.JSONEq(t, `{"Customers":[]}`, w.Body.String())
}

func TestCreateExposesStoreMessage(t *testing.T) {
	router := setupRouter(t, &stubService{err: errors.New("Document failed validation")}, false)

	w := doJSON(router, http.MethodPost, "/api/customers", `{"name":"John"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Document failed validation"}`, w.Body.String())
}

func TestGetCustomer(t *testing.T) {
	router := setupRouter(t, nil, true)

	w := doJSON(router, http.MethodPost, "/api/customers", `{"name":"Marvellous","industry":"Sports"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[CustomerResponse](t, w).Customer.ID

	t.Run("trailing slash", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/customers/"+id+"/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Marvellous", decode[CustomerResponse](t, w).Customer.Name)
	})

	t.Run("unassigned id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/customers/"+repositories.NewID(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/customers/not-an-id", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode[ErrorResponse](t, w)
		assert.Equal(t, MsgGetFailed, body.Error)
		assert.Contains(t, body.Details, "not-an-id")
	})
}

func TestErrorDetailsExposure(t *testing.T) {
	failure := errors.New("connection refused")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		msg    string
	}{
		{"list", http.MethodGet, "/api/customers", "", MsgInternalFailed},
		{"get", http.MethodGet, "/api/customers/" + repositories.NewID(), "", MsgGetFailed},
		{"replace", http.MethodPut, "/api/customers/" + repositories.NewID(), `{"name":"X"}`, MsgInternalFailed},
		{"delete", http.MethodDelete, "/api/customers/" + repositories.NewID(), "", MsgInternalFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name+" exposed", func(t *testing.T) {
			router := setupRouter(t, &stubService{err: failure}, true)
			w := doJSON(router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, ErrorResponse{Error: tt.msg, Details: "connection refused"}, decode[ErrorResponse](t, w))
		})

		t.Run(tt.name+" redacted", func(t *testing.T) {
			router := setupRouter(t, &stubService{err: failure}, false)
			w := doJSON(router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.msg+`"}`, w.Body.String())
		})
	}
}

func TestReplaceCustomer(t *testing.T) {
	router := setupRouter(t, nil, true)

	w := doJSON(router, http.MethodPost, "/api/customers", `{"name":"John","industry":"Music"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[CustomerResponse](t, w).Customer.ID

	w = doJSON(router, http.MethodPut, "/api/customers/"+id, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "name is required")

	w = doJSON(router, http.MethodPut, "/api/customers/"+repositories.NewID(), `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updatedCount":0}`, w.Body.String())

	w = doJSON(router, http.MethodPut, "/api/customers/bogus", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, MsgInternalFailed, decode[ErrorResponse](t, w).Error)
}

func TestDeleteMissingCustomer(t *testing.T) {
	router := setupRouter(t, nil, true)

	w := doJSON(router, http.MethodDelete, "/api/customers/"+repositories.NewID(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deletedCount":0}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := doJSON(setupRouter(t, nil, true), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, w)["status"])

	w = doJSON(setupRouter(t, &stubService{err: errors.New("no reachable servers")}, false), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"unhealthy"}`, w.Body.String())
}
