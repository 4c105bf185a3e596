// Package validation provides the equipment validation rules.
//
// The same rule set serves both entry points: interactive registration and
// the line-based bulk loader. It is made of:
//   - pure predicates (IsValidIP, IsDuplicateIP, IsPositive, IsInRange, IsNonEmpty)
//   - token parsers built on those predicates (ParseHours, ParseFlag, ...)
//   - a composite Validator using go-playground/validator struct tags on
//     models.Equipment plus a struct-level kind check
//
// # Usage Example
//
//	v := validation.New()
//	result := v.ValidateEquipment(&equipment)
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Printf("%s: %s\n", e.Field, e.Message)
//	    }
//	}
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"evalgo.org/eqinv/models"
)

// Validator checks a complete equipment record.
type Validator struct {
	// structValidator validates Go struct constraints and tags
	structValidator *validator.Validate
}

// ValidationError represents a single validation error with field-level details.
type ValidationError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value that caused the error (optional)
	Value interface{} `json:"value,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult represents the complete result of a validation operation.
type ValidationResult struct {
	// Valid is true if validation passed, false otherwise
	Valid bool `json:"valid"`

	// Errors contains all validation errors found, in field order
	Errors []ValidationError `json:"errors,omitempty"`
}

// Add records a failure and marks the result invalid.
func (r *ValidationResult) Add(field, message string, value interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Value: value})
}

// First returns the first failure, which is what single-line reports show.
func (r *ValidationResult) First() (ValidationError, bool) {
	if len(r.Errors) == 0 {
		return ValidationError{}, false
	}
	return r.Errors[0], true
}

// New creates a Validator with the equipment rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("energyWatts") rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// These only fail if the tag name is already taken, which cannot happen
	// on a fresh instance.
	_ = v.RegisterValidation("dottedquad", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return IsValidIP(fl.Field().String())
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return IsNonEmpty(fl.Field().String())
	})
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return IsTrimmed(fl.Field().String())
	})
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return IsSingleLine(fl.Field().String())
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return IsFinite(fl.Field().Float())
	})

	v.RegisterStructValidation(kindSectionLevel, models.Equipment{})

	return &Validator{structValidator: v}
}

// kindSectionLevel enforces that the section matching Kind is present and
// every other section is absent.
func kindSectionLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(models.Equipment)

	sections := []struct {
		kind    models.Kind
		present bool
		field   string
		name    string
	}{
		{models.KindRouter, e.Router != nil, "router", "Router"},
		{models.KindSwitch, e.Switch != nil, "switch", "Switch"},
		{models.KindServer, e.Server != nil, "server", "Server"},
		{models.KindFirewall, e.Firewall != nil, "firewall", "Firewall"},
	}

	for _, s := range sections {
		switch {
		case e.Kind == s.kind && !s.present:
			sl.ReportError(nil, s.field, s.name, "kindrequired", string(s.kind))
		case e.Kind != s.kind && s.present:
			sl.ReportError(nil, s.field, s.name, "kindexcluded", string(s.kind))
		}
	}
}

// ValidateEquipment runs every field rule and the kind section check.
// Duplicate IP detection needs the inventory and is done by the registry.
func (v *Validator) ValidateEquipment(e *models.Equipment) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if e == nil {
		result.Add("equipment", "Equipment is required", nil)
		return result
	}

	err := v.structValidator.Struct(e)
	if err == nil {
		return result
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Add("equipment", err.Error(), nil)
		return result
	}

	for _, fe := range fieldErrs {
		result.Add(fieldPath(fe), message(fe), fe.Value())
	}
	return result
}

// fieldPath drops the root struct name: "Equipment.router.mbps" -> "router.mbps".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Value is required"
	case "nonblank":
		return "Value cannot be empty"
	case "trimmed":
		return "Value cannot start or end with spaces"
	case "singleline":
		return "Value cannot contain line breaks"
	case "finite":
		return "Value must be a finite number"
	case "excludes":
		return fmt.Sprintf("Value cannot contain %q", fe.Param())
	case "dottedquad":
		return "Invalid IP format (expected e.g. 192.168.0.10)"
	case "gt":
		return "Value must be positive"
	case "min", "max":
		return fmt.Sprintf("Value must be between %d and %d", MinHoursPerDay, MaxHoursPerDay)
	case "oneof":
		return fmt.Sprintf("Invalid value: must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "kindrequired":
		return fmt.Sprintf("Fields are required for type %s", models.Kind(fe.Param()).Label())
	case "kindexcluded":
		return fmt.Sprintf("Fields only apply to type %s", models.Kind(fe.Param()).Label())
	}
	return fmt.Sprintf("Failed %s validation", fe.Tag())
}
