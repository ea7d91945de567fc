package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"customers-api/internal/api/handler/dto"
	"customers-api/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const customerIDParam = "customerID"

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// getCustomerIDFromURL treats anything that is not a UUID as an id that
// cannot exist.
func getCustomerIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, customerIDParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("customer id %q: %w", idStr, customer.ErrNotFound)
	}
	return id, nil
}

// CreateCustomer handles POST /customers
// @Summary Create a new customer
// @Description Validates the customer, confirms the GitHub username exists and stores the record.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer to create"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Header 201 {string} Location "/customers/{id}"
// @Failure 400 {object} dto.ProblemResponse "One or more validation errors occurred"
// @Failure 500 {object} dto.ProblemResponse "Internal error or GitHub unavailable"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToDomain())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	resp := dto.NewCustomerResponse(created)
	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.String("customerID", resp.ID))
	w.Header().Set("Location", "/customers/"+resp.ID)
	respondJSON(w, http.StatusCreated, resp)
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve a customer
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 200 {object} dto.CustomerResponse "Customer details"
// @Failure 404 {object} dto.ProblemResponse "Customer not found"
// @Failure 500 {object} dto.ProblemResponse "Internal server error"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	found, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(found))
}

// GetAllCustomers handles GET /customers
// @Summary List customers
// @Description Lists every customer in the order they were created.
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.GetAllCustomersResponse "All customers"
// @Failure 500 {object} dto.ProblemResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetAllCustomers(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewGetAllCustomersResponse(customers))
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Replace a customer
// @Description Validates the new field values, then replaces the stored customer. The id never changes.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Param request body dto.CustomerRequest true "New customer values"
// @Success 200 {object} dto.CustomerResponse "Customer updated"
// @Failure 400 {object} dto.ProblemResponse "One or more validation errors occurred"
// @Failure 404 {object} dto.ProblemResponse "Customer not found"
// @Failure 500 {object} dto.ProblemResponse "Internal error or GitHub unavailable"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToDomain())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.String("customerID", customerID.String()))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Delete a customer
// @Tags Customers
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 200 "Customer deleted"
// @Failure 404 {object} dto.ProblemResponse "Customer not found"
// @Failure 500 {object} dto.ProblemResponse "Internal server error"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.String("customerID", customerID.String()))
	w.WriteHeader(http.StatusOK)
}
