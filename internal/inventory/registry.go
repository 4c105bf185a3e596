// Package inventory holds the in-memory equipment registry.
//
// The Registry exclusively owns its records: everything going in is copied
// and everything coming out is a copy, so callers can never mutate a record
// behind the registry's back. Records change only through Apply (power state
// transitions) and removal. IP addresses are unique at all times.
//
// The registry is meant for a single control goroutine and does no locking.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"evalgo.org/eqinv/internal/validation"
	"evalgo.org/eqinv/models"
)

var (
	// ErrNotFound indicates no record has the requested IP.
	ErrNotFound = errors.New("equipment not found")

	// ErrDuplicateIP indicates the IP is already registered.
	ErrDuplicateIP = errors.New("ip already registered")

	// ErrInvalidEquipment indicates a record failed field validation.
	ErrInvalidEquipment = errors.New("invalid equipment")

	// ErrRestartWhileOff indicates a restart was requested on equipment that is off.
	ErrRestartWhileOff = errors.New("equipment must be on to restart")

	// ErrUnknownOperation indicates an operation outside the power state machine.
	ErrUnknownOperation = errors.New("unknown operation")
)

// RegistrationError carries the full validation result of a rejected
// registration. It matches ErrDuplicateIP or ErrInvalidEquipment with errors.Is.
type RegistrationError struct {
	Result    *validation.ValidationResult
	duplicate bool
}

func (e *RegistrationError) Error() string {
	if first, ok := e.Result.First(); ok {
		return fmt.Sprintf("registration rejected: %s", first)
	}
	return "registration rejected"
}

func (e *RegistrationError) Unwrap() error {
	if e.duplicate {
		return ErrDuplicateIP
	}
	return ErrInvalidEquipment
}

// Reason is the first failure in a form suitable for a single log line.
func (e *RegistrationError) Reason() string {
	first, ok := e.Result.First()
	if !ok {
		return "invalid equipment"
	}
	if e.duplicate && first.Field == "ip" {
		return fmt.Sprintf("IP %v already registered", first.Value)
	}
	return fmt.Sprintf("%s: %s", first.Field, lowerFirst(first.Message))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Registry is the ordered collection of every current equipment record.
type Registry struct {
	validator *validation.Validator
	items     []models.Equipment
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{validator: validation.New()}
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.items)
}

// All returns copies of every record in insertion order.
func (r *Registry) All() []models.Equipment {
	out := make([]models.Equipment, len(r.items))
	for i, e := range r.items {
		out[i] = e.Clone()
	}
	return out
}

// Register validates e and appends a copy of it. Nothing changes when any
// rule fails; the returned *RegistrationError lists the failures.
func (r *Registry) Register(e models.Equipment) (models.Equipment, error) {
	result := r.validator.ValidateEquipment(&e)

	duplicate := validation.IsDuplicateIP(r.items, e.IP)
	if duplicate {
		dup := validation.ValidationError{Field: "ip", Message: "IP already registered", Value: e.IP}
		// Report the duplicate first; it is the most actionable failure.
		result.Errors = append([]validation.ValidationError{dup}, result.Errors...)
		result.Valid = false
	}

	if !result.Valid {
		return models.Equipment{}, &RegistrationError{Result: result, duplicate: duplicate}
	}

	stored := e.Clone()
	r.items = append(r.items, stored)
	return stored.Clone(), nil
}

// Contains reports whether ip is registered.
func (r *Registry) Contains(ip string) bool {
	return r.indexOf(ip) >= 0
}

// FindByIP returns a copy of the record registered under ip.
func (r *Registry) FindByIP(ip string) (models.Equipment, error) {
	i := r.indexOf(ip)
	if i < 0 {
		return models.Equipment{}, fmt.Errorf("%w: %s", ErrNotFound, ip)
	}
	return r.items[i].Clone(), nil
}

// RemoveByIP removes the record registered under ip.
func (r *Registry) RemoveByIP(ip string) bool {
	return r.RemoveAt(r.indexOf(ip))
}

// RemoveAt removes the record at position i of the current order. It
// returns false when i is out of bounds.
func (r *Registry) RemoveAt(i int) bool {
	if i < 0 || i >= len(r.items) {
		return false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return true
}

func (r *Registry) indexOf(ip string) int {
	for i, e := range r.items {
		if e.IP == ip {
			return i
		}
	}
	return -1
}
