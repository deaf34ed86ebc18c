// Package session holds the signed-in user's identity: a small key/value
// store and the typed Session Record read from its "user" item.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// UserKey is the store item holding the JSON Session Record.
const UserKey = "user"

// TokenKey is the store item holding the remote store's access token, if any.
const TokenKey = "jwt"

type Role string

const (
	RoleNone     Role = ""
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

type Record struct {
	Role  Role   `json:"role" validate:"required,oneof=Employee Admin"`
	Email string `json:"email,omitempty" validate:"max=320"`
}

// Authenticated reports whether the record carries a known role.
func (r Record) Authenticated() bool { return r.Role != RoleNone }

var validate = validator.New()

// rawRecord accepts the legacy "type" key as an alias of "role".
type rawRecord struct {
	Role  string `json:"role"`
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Parse turns the stored JSON into a Record. Anything that is not a valid
// record for a known role yields the zero Record, which is unauthenticated.
func Parse(raw string) Record {
	rec, err := parse(raw)
	if err != nil {
		return Record{}
	}
	return rec
}

func parse(raw string) (Record, error) {
	var rr rawRecord
	if err := json.Unmarshal([]byte(raw), &rr); err != nil {
		return Record{}, fmt.Errorf("decoding session record: %w", err)
	}

	role := rr.Role
	if role == "" {
		role = rr.Type
	}

	rec := Record{Role: Role(role), Email: rr.Email}
	if err := validate.Struct(rec); err != nil {
		return Record{}, fmt.Errorf("validating session record: %w", err)
	}

	return rec, nil
}

// Load reads the Session Record from s.
func Load(s Store) Record {
	raw, ok := s.GetItem(UserKey)
	if !ok {
		return Record{}
	}
	return Parse(raw)
}

// Save writes rec to s under UserKey.
func Save(s Store, rec Record) error {
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("validating session record: %w", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.SetItem(UserKey, string(raw))
}
