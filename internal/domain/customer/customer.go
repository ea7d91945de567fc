package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID             uuid.UUID `json:"id"`
	GitHubUsername string    `json:"githubUsername"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	CreatedAt      time.Time `json:"-"`
}

// Request carries the client supplied fields for a create or an update.
type Request struct {
	GitHubUsername string
	FullName       string
	Email          string
	DateOfBirth    time.Time

	// DateOfBirthInvalid is set when the client sent a value that is not a
	// date. DateOfBirth is zero in that case.
	DateOfBirthInvalid bool
}

func (r Request) Normalized() Request {
	return Request{
		GitHubUsername: strings.TrimSpace(r.GitHubUsername),
		FullName:       strings.TrimSpace(r.FullName),
		Email:          strings.TrimSpace(r.Email),
		DateOfBirth:    DateOnly(r.DateOfBirth),

		DateOfBirthInvalid: r.DateOfBirthInvalid,
	}
}

func NewCustomer(req Request) *Customer {
	c := &Customer{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	c.Apply(req)
	return c
}

// Apply replaces every client owned field. ID and CreatedAt are left alone.
func (c *Customer) Apply(req Request) {
	c.GitHubUsername = req.GitHubUsername
	c.FullName = req.FullName
	c.Email = req.Email
	c.DateOfBirth = DateOnly(req.DateOfBirth)
}

// DateOnly drops the time of day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeAt returns the number of full years between dateOfBirth and now.
func AgeAt(dateOfBirth, now time.Time) int {
	dob := DateOnly(dateOfBirth)
	today := DateOnly(now)
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}
