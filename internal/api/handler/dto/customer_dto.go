package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"customers-api/internal/domain/customer"
)

const DateLayout = "2006-01-02"

// Date is a calendar date carried on the wire as YYYY-MM-DD. Full RFC 3339
// timestamps are accepted on input and truncated to their date. A value
// that is not a date sets Invalid instead of failing the decode, so the
// rest of the body is still validated.
type Date struct {
	time.Time
	Invalid bool
}

func (d *Date) UnmarshalJSON(data []byte) error {
	d.Time, d.Invalid = time.Time{}, false
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		d.Invalid = true
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(DateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = customer.DateOnly(t)
		return nil
	}
	d.Invalid = true
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.Format(DateLayout))), nil
}

// CustomerRequest is the body of POST /customers and PUT /customers/{id}.
type CustomerRequest struct {
	GitHubUsername string `json:"githubUsername" example:"octocat"`
	FullName       string `json:"fullName" example:"Mona Lisa Octocat"`
	Email          string `json:"email" example:"mona@example.com"`
	DateOfBirth    Date   `json:"dateOfBirth" swaggertype:"string" format:"date" example:"1990-01-31"`
}

func (r CustomerRequest) ToDomain() customer.Request {
	return customer.Request{
		GitHubUsername: r.GitHubUsername,
		FullName:       r.FullName,
		Email:          r.Email,
		DateOfBirth:    r.DateOfBirth.Time,

		DateOfBirthInvalid: r.DateOfBirth.Invalid,
	}
}

type CustomerResponse struct {
	ID             string `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	GitHubUsername string `json:"githubUsername" example:"octocat"`
	FullName       string `json:"fullName" example:"Mona Lisa Octocat"`
	Email          string `json:"email" example:"mona@example.com"`
	DateOfBirth    string `json:"dateOfBirth" example:"1990-01-31"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:             cust.ID.String(),
		GitHubUsername: cust.GitHubUsername,
		FullName:       cust.FullName,
		Email:          cust.Email,
		DateOfBirth:    cust.DateOfBirth.Format(DateLayout),
	}
}

type GetAllCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func NewGetAllCustomersResponse(customers []*customer.Customer) GetAllCustomersResponse {
	resp := GetAllCustomersResponse{Customers: make([]CustomerResponse, 0, len(customers))}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, NewCustomerResponse(c))
	}
	return resp
}
