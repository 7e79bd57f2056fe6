// Package forms defines the closed set of application form variants. Each
// detail page renders one variant; a variant enumerates its own fields and
// required-field list, so the client controller and the submission relay
// validate against one source of truth instead of a loosely-typed bag of
// optional fields.
package forms

import (
	"regexp"
	"strings"
)

// Variant tags one form shape.
type Variant string

const (
	// VariantStudent is the default job-detail application form
	// (university/cycle fields), also used by the programmer detail page.
	VariantStudent Variant = "student"
	// VariantMarketing is the marketing detail page form
	// (education/portfolio fields).
	VariantMarketing Variant = "marketing"
	// VariantGeneral is the standalone apply page (profession/preferred
	// countries fields).
	VariantGeneral Variant = "general"
	// VariantRegistration is the credentials step after a successful
	// application.
	VariantRegistration Variant = "registration"
)

// MaxResumeSize is the attachment ceiling, enforced both by the client
// controller and, authoritatively, by the relay.
const MaxResumeSize = 5 * 1024 * 1024

// MinPasswordLength applies to the registration variant only.
const MinPasswordLength = 6

// emailPattern is deliberately permissive (local@domain.tld shape, nothing
// more). This is the canonical validation level; do not tighten it.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Values holds the text fields of a form in flight. Multi-valued entries
// (preferred countries) keep every selection.
type Values map[string][]string

func (v Values) Get(name string) string {
	if list, ok := v[name]; ok && len(list) > 0 {
		return list[0]
	}
	return ""
}

func (v Values) Set(name, value string) {
	v[name] = []string{value}
}

func (v Values) Add(name, value string) {
	v[name] = append(v[name], value)
}

// File is the single uploaded resume reference.
type File struct {
	Name string
	Size int64
	Data []byte
}

// Schema describes one variant: which text fields exist, which are required,
// and whether the variant carries a resume and a terms checkbox. Fields is
// in display order; the first invalid field in that order receives focus.
type Schema struct {
	Variant     Variant
	Fields      []string
	Required    []string
	MultiValued []string
	NeedsResume bool
	NeedsTerms  bool
}

var schemas = map[Variant]Schema{
	VariantStudent: {
		Variant:     VariantStudent,
		Fields:      []string{"name", "email", "phone", "university", "cycle", "englishLevel", "experience", "coverLetter"},
		Required:    []string{"name", "email", "phone", "university", "cycle", "englishLevel", "coverLetter"},
		NeedsResume: true,
		NeedsTerms:  true,
	},
	VariantMarketing: {
		Variant:     VariantMarketing,
		Fields:      []string{"name", "email", "phone", "education", "experience", "englishLevel", "portfolio", "coverLetter"},
		Required:    []string{"name", "email", "phone", "education", "experience", "englishLevel", "coverLetter"},
		NeedsResume: true,
		NeedsTerms:  true,
	},
	VariantGeneral: {
		Variant:     VariantGeneral,
		Fields:      []string{"firstName", "lastName", "email", "phone", "country", "profession", "experience", "preferredCountries", "englishLevel", "otherLanguages", "coverLetter"},
		Required:    []string{"firstName", "lastName", "email", "phone", "country", "profession", "experience", "preferredCountries", "englishLevel"},
		MultiValued: []string{"preferredCountries"},
		NeedsResume: true,
		NeedsTerms:  true,
	},
	VariantRegistration: {
		Variant:  VariantRegistration,
		Fields:   []string{"email", "password"},
		Required: []string{"email", "password"},
	},
}

// ByName resolves a variant tag.
func ByName(name string) (Schema, bool) {
	s, ok := schemas[Variant(name)]
	return s, ok
}

// Get returns the schema for a variant. Unknown variants return the zero
// schema, which requires nothing.
func Get(v Variant) Schema {
	return schemas[v]
}

// Registry returns the closed set of variants.
func Registry() []Schema {
	return []Schema{
		schemas[VariantStudent],
		schemas[VariantMarketing],
		schemas[VariantGeneral],
		schemas[VariantRegistration],
	}
}

var requiredMessages = map[string]string{
	"name":               "El nombre es requerido",
	"firstName":          "El nombre es requerido",
	"lastName":           "El apellido es requerido",
	"email":              "El email es requerido",
	"phone":              "El teléfono es requerido",
	"university":         "La universidad es requerida",
	"cycle":              "El ciclo de estudios es requerido",
	"englishLevel":       "El nivel de inglés es requerido",
	"coverLetter":        "La carta de presentación es requerida",
	"education":          "La formación académica es requerida",
	"experience":         "La experiencia es requerida",
	"country":            "El país de residencia es requerido",
	"profession":         "La profesión es requerida",
	"preferredCountries": "Selecciona al menos un país de preferencia",
	"password":           "La contraseña es requerida",
	"jobTitle":           "El puesto es requerido",
}

const (
	msgInvalidEmail     = "El email no es válido"
	msgResumeRequired   = "El CV es requerido"
	msgResumeTooLarge   = "El archivo CV excede el tamaño máximo de 5MB"
	msgTermsRequired    = "Debes aceptar los términos y condiciones"
	msgPasswordTooShort = "Mínimo 6 caracteres"
)

// RequiredMessage returns the inline message shown for an empty field.
func RequiredMessage(field string) string {
	if msg, ok := requiredMessages[field]; ok {
		return msg
	}
	return "Campo requerido"
}

// ValidEmail checks a value against the canonical permissive pattern.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Validate is a pure function from form state to a field → message mapping.
// An empty result means the form may be submitted. Required checks are
// simple truthiness checks: whitespace-only strings, absent files and an
// unchecked terms box all fail.
func (s Schema) Validate(values Values, file *File, termsAccepted bool) map[string]string {
	errs := make(map[string]string)

	for _, field := range s.Required {
		if s.isMultiValued(field) {
			if len(values[field]) == 0 {
				errs[field] = RequiredMessage(field)
			}
			continue
		}
		if strings.TrimSpace(values.Get(field)) == "" {
			errs[field] = RequiredMessage(field)
		}
	}

	if email := values.Get("email"); email != "" && !ValidEmail(email) {
		errs["email"] = msgInvalidEmail
	}

	if s.Variant == VariantRegistration {
		if password := values.Get("password"); strings.TrimSpace(password) != "" && len(password) < MinPasswordLength {
			errs["password"] = msgPasswordTooShort
		}
	}

	if s.NeedsResume {
		switch {
		case file == nil:
			errs["resumeFile"] = msgResumeRequired
		case file.Size > MaxResumeSize:
			errs["resumeFile"] = msgResumeTooLarge
		}
	}

	if s.NeedsTerms && !termsAccepted {
		errs["termsAccepted"] = msgTermsRequired
	}

	return errs
}

// FirstInvalid returns the first field in display order carrying an error,
// so the UI can return focus to it.
func (s Schema) FirstInvalid(errs map[string]string) string {
	order := append([]string{}, s.Fields...)
	if s.NeedsResume {
		order = append(order, "resumeFile")
	}
	if s.NeedsTerms {
		order = append(order, "termsAccepted")
	}
	for _, field := range order {
		if _, ok := errs[field]; ok {
			return field
		}
	}
	return ""
}

func (s Schema) isMultiValued(field string) bool {
	for _, f := range s.MultiValued {
		if f == field {
			return true
		}
	}
	return false
}
