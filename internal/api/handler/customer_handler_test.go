package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"customers-api/internal/api/handler"
	"customers-api/internal/api/handler/dto"
	"customers-api/internal/api/problem"
	"customers-api/internal/domain/customer"
	"customers-api/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, req customer.Request) (*customer.Customer, error) {
	ret := _m.Called(ctx, req)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetAllCustomers(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req customer.Request) (*customer.Customer, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupRouter(svc customer.CustomerService) http.Handler {
	h := handler.NewCustomerHandler(svc, testLogger)
	r := chi.NewRouter()
	r.Post("/customers", h.CreateCustomer)
	r.Get("/customers", h.GetAllCustomers)
	r.Get("/customers/{customerID}", h.GetCustomer)
	r.Put("/customers/{customerID}", h.UpdateCustomer)
	r.Delete("/customers/{customerID}", h.DeleteCustomer)
	return r
}

func sampleCustomer() *customer.Customer {
	return &customer.Customer{
		ID:             uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		GitHubUsername: "validuser",
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		DateOfBirth:    time.Date(1990, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

const validBody = `{"githubUsername":"validuser","fullName":"Jane Doe","email":"jane@example.com","dateOfBirth":"1990-01-31"}`

func expectedRequest() customer.Request {
	return customer.Request{
		GitHubUsername: "validuser",
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		DateOfBirth:    time.Date(1990, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) problem.Document {
	t.Helper()
	assert.Equal(t, problem.ContentType, rec.Header().Get("Content-Type"))
	var doc problem.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, rec.Code, doc.Status, "status in body matches the HTTP status")
	return doc
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCustomerService)
		created := sampleCustomer()
		svc.On("CreateCustomer", mock.Anything, expectedRequest()).Return(created, nil).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "/customers/"+created.ID.String(), rec.Header().Get("Location"))
		assert.JSONEq(t, `{"id":"0f8fad5b-d9cb-469f-a165-70867728950e","githubUsername":"validuser","fullName":"Jane Doe","email":"jane@example.com","dateOfBirth":"1990-01-31"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("Error - Validation Failed", func(t *testing.T) {
		svc := new(MockCustomerService)
		var failures apperrors.ValidationErrors
		failures.Add(customer.FieldGitHubUsername, "There is no GitHub user with username invaliduser")
		svc.On("CreateCustomer", mock.Anything, mock.Anything).Return(nil, failures).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Equal(t, problem.TitleValidation, doc.Title)
		assert.Equal(t, []string{"There is no GitHub user with username invaliduser"}, doc.Errors["githubUsername"])
	})

	t.Run("Error - Upstream Unavailable", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("CreateCustomer", mock.Anything, mock.Anything).
			Return(nil, apperrors.WrapUpstreamError("github", "rate_limited")).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Equal(t, problem.TitleInternal, doc.Title)
		assert.NotContains(t, rec.Body.String(), "github")
	})

	t.Run("Error - Malformed JSON", func(t *testing.T) {
		svc := new(MockCustomerService)

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"fullName":`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Contains(t, doc.Errors, "body")
		svc.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("Error - Invalid Date Reaches Validation", func(t *testing.T) {
		svc := new(MockCustomerService)
		body := `{"githubUsername":"validuser","fullName":"Jane","email":"jane@example.com","dateOfBirth":"31/01/1990"}`
		svc.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req customer.Request) bool {
			return req.DateOfBirthInvalid && req.DateOfBirth.IsZero() && req.FullName == "Jane"
		})).Return(nil, apperrors.NewValidationError(customer.FieldDateOfBirth, "The dateOfBirth field is not a valid date.")).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Contains(t, doc.Errors, "dateOfBirth")
		svc.AssertExpectations(t)
	})

	t.Run("Error - Wrong Field Type", func(t *testing.T) {
		svc := new(MockCustomerService)

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"fullName":42}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Contains(t, doc.Errors, "fullName")
	})
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCustomerService)
		cust := sampleCustomer()
		svc.On("GetCustomer", mock.Anything, cust.ID).Return(cust, nil).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+cust.ID.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, cust.ID.String(), resp.ID)
		assert.Equal(t, "1990-01-31", resp.DateOfBirth)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("GetCustomer", mock.Anything, id).Return(nil, customer.ErrNotFound).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Equal(t, problem.TitleNotFound, doc.Title)
		assert.Empty(t, doc.Errors)
	})

	t.Run("Error - Malformed ID Is Not Found", func(t *testing.T) {
		svc := new(MockCustomerService)

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("GetCustomer", mock.Anything, id).Return(nil, errors.New("database error: connection refused")).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestCustomerHandler_GetAllCustomers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("GetAllCustomers", mock.Anything).Return([]*customer.Customer{sampleCustomer()}, nil).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.GetAllCustomersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Customers, 1)
		assert.Equal(t, "validuser", resp.Customers[0].GitHubUsername)
	})

	t.Run("Empty", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("GetAllCustomers", mock.Anything).Return([]*customer.Customer{}, nil).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"customers":[]}`, rec.Body.String())
	})
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCustomerService)
		cust := sampleCustomer()
		svc.On("UpdateCustomer", mock.Anything, cust.ID, expectedRequest()).Return(cust, nil).Once()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/customers/"+cust.ID.String(), bytes.NewBufferString(validBody))
		setupRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, cust.ID.String(), resp.ID)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("UpdateCustomer", mock.Anything, id, mock.Anything).Return(nil, customer.ErrNotFound).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/customers/"+id.String(), strings.NewReader(validBody)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Error - Validation Failed", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("UpdateCustomer", mock.Anything, id, mock.Anything).
			Return(nil, apperrors.NewValidationError(customer.FieldFullName, "Full name must not be empty")).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/customers/"+id.String(), strings.NewReader(validBody)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Equal(t, []string{"Full name must not be empty"}, doc.Errors["fullName"])
	})
}

func TestCustomerHandler_DeleteCustomer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("DeleteCustomer", mock.Anything, id).Return(nil).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		svc := new(MockCustomerService)
		id := uuid.New()
		svc.On("DeleteCustomer", mock.Anything, id).Return(customer.ErrNotFound).Once()

		rec := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		decodeProblem(t, rec)
	})
}

func TestNewCustomerHandler_Panics(t *testing.T) {
	assert.Panics(t, func() { handler.NewCustomerHandler(nil, testLogger) })
	assert.Panics(t, func() { handler.NewCustomerHandler(new(MockCustomerService), nil) })
}
