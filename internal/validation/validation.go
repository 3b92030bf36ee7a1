// Package validation checks user, CV and job-offer input at the API boundary.
//
// Inputs are typed structs carrying `validate` and `label` tags; every check
// produces a Result listing field errors with French, user-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordSpec = "@$!%*?&"
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of a validation. The zero value is not valid; use Success.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Success returns a valid, empty result.
func Success() *Result {
	return &Result{Valid: true}
}

// AddError records a failure and marks the result invalid.
func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
	r.Valid = false
}

// Error joins all messages; it makes *Result usable as an error value.
func (r *Result) Error() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil for a valid result and the result itself otherwise.
func (r *Result) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return r
}

// AsResult extracts a *Result from an error chain.
func AsResult(err error) (*Result, bool) {
	var r *Result
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// UserInput is the editable identity of a user.
type UserInput struct {
	FirstName string `json:"firstName" label:"prénom" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" label:"nom" validate:"required,min=2,max=50"`
	Email     string `json:"email" label:"email" validate:"required,email_loose"`
}

// RegistrationInput is a UserInput plus the initial password.
type RegistrationInput struct {
	UserInput
	Password string `json:"password" label:"mot de passe" validate:"required,password"`
}

// CVInput is the metadata of a CV about to be persisted.
type CVInput struct {
	UserID   string `json:"userId" label:"utilisateur" validate:"required"`
	FileName string `json:"fileName" label:"nom du fichier" validate:"required"`
	FileType string `json:"fileType" label:"type de fichier" validate:"required,cv_file_type"`
}

// JobOfferInput is an offer about to be imported.
type JobOfferInput struct {
	UserID       string `json:"userId" label:"utilisateur" validate:"required"`
	Title        string `json:"title" label:"titre" validate:"required,min=5,max=200"`
	Description  string `json:"description" label:"description" validate:"required,min=10,max=5000"`
	Company      string `json:"company" label:"entreprise" validate:"required"`
	Location     string `json:"location" label:"localisation" validate:"required"`
	ContractType string `json:"contractType" label:"type de contrat" validate:"omitempty,max=50"`
	URL          string `json:"url" label:"url" validate:"omitempty,url"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	_ = v.RegisterValidation("email_loose", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("cv_file_type", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "pdf", "doc", "docx", "txt", "text/plain":
			return true
		}
		return false
	})
	return v
}

// IsStrongPassword reports whether p has at least 8 characters drawn from
// letters, digits and @$!%*?&, with at least one of each class.
func IsStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpec, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// User validates profile fields.
func User(in UserInput) *Result { return check(in) }

// Registration validates profile fields and the password.
func Registration(in RegistrationInput) *Result { return check(in) }

// CV validates CV metadata.
func CV(in CVInput) *Result { return check(in) }

// JobOffer validates an offer import.
func JobOffer(in JobOfferInput) *Result { return check(in) }

func check(in any) *Result {
	res := Success()
	err := validate.Struct(in)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.AddError("", err.Error())
		return res
	}

	t := reflect.TypeOf(in)
	for _, fe := range verrs {
		res.AddError(jsonName(t, fe.StructField()), message(fe))
	}
	return res
}

func jsonName(t reflect.Type, goName string) string {
	if f, ok := t.FieldByName(goName); ok {
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" {
			return name
		}
	}
	return goName
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s est requis", label)
	case "min":
		return fmt.Sprintf("%s doit contenir au moins %s caractères", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s ne peut pas dépasser %s caractères", label, fe.Param())
	case "email_loose":
		return "Format d'email invalide"
	case "password":
		return "Le mot de passe doit contenir au moins 8 caractères, une majuscule, une minuscule, un chiffre et un caractère spécial"
	case "cv_file_type":
		return "Type de fichier non supporté"
	case "url":
		return fmt.Sprintf("%s doit être une URL valide", label)
	default:
		return fmt.Sprintf("%s est invalide", label)
	}
}
