// Package validate holds the process-wide struct validator with english messages
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Svc holds a singleton validator and translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

// Issue is one failed rule, keyed by the env var name of the field
type Issue struct {
	Field   string
	Tag     string
	Message string
}

var (
	once sync.Once
	svc  *Svc
)

// Init builds the singleton validator with english translations and env tag names
func Init() *Svc {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// name fields by their env var so messages point at what to set
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("env")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		svc = &Svc{Validator: v, Translator: trans}
	})
	return svc
}

// Struct validates v and returns one Issue per failed rule, nil when valid.
// Non-validation errors (e.g. v is not a struct) come back as a single Issue
func Struct(v any) []Issue {
	s := Init()
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []Issue{{Field: "", Tag: "invalid", Message: err.Error()}}
	}
	out := make([]Issue, 0, len(ves))
	for _, fe := range ves {
		out = append(out, Issue{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(s.Translator),
		})
	}
	return out
}
