// Package handoff carries applicant identity from a submitted application to
// the registration step. The contract is a plain query string on the
// registration path; there is no server-side session, so the URL itself is
// the only state.
package handoff

import (
	"errors"
	"net/url"
)

// Path is the registration page the apply flow navigates to.
const Path = "/register"

// ErrIncomplete signals that one or more identity parameters are absent or
// empty. The registration flow treats this as an expired session: a terminal
// state, not a validation error the user can correct.
var ErrIncomplete = errors.New("handoff incomplete")

// Identity is the applicant context the registration step needs.
type Identity struct {
	Name     string
	Email    string
	JobTitle string
}

// Complete reports whether all three parameters are present.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Email != "" && i.JobTitle != ""
}

// Encode builds the registration URL for an applicant. Values are
// percent-encoded exactly once; Decode is its inverse.
func Encode(i Identity) string {
	q := url.Values{}
	q.Set("name", i.Name)
	q.Set("email", i.Email)
	q.Set("job", i.JobTitle)
	return Path + "?" + q.Encode()
}

// Decode reads the identity out of registration query parameters. Any
// missing or empty parameter yields ErrIncomplete.
func Decode(query url.Values) (Identity, error) {
	i := Identity{
		Name:     query.Get("name"),
		Email:    query.Get("email"),
		JobTitle: query.Get("job"),
	}
	if !i.Complete() {
		return Identity{}, ErrIncomplete
	}
	return i, nil
}

// DecodeURL is Decode applied to a full URL string, as produced by Encode.
func DecodeURL(raw string) (Identity, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Identity{}, ErrIncomplete
	}
	return Decode(u.Query())
}
