package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownSchema = errors.New("validation: unknown schema")

// Registry maps schema ids to payload types so every entry point validates a
// given shape with the same rules.
type Registry struct {
	validate *validator.Validate

	mu      sync.RWMutex
	schemas map[string]reflect.Type
}

// NewRegistry wraps v, registers the custom validators and makes field
// errors report JSON names.
func NewRegistry(v *validator.Validate) *Registry {
	RegisterValidators(v)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Registry{
		validate: v,
		schemas:  make(map[string]reflect.Type),
	}
}

// Register binds id to the type of sample. Registering an id twice replaces
// the earlier binding.
func (r *Registry) Register(id string, sample interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[id] = indirectType(reflect.TypeOf(sample))
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schemas[id]
	return ok
}

// Validate checks payload against schema id. A schema violation yields an
// *apperror.AppError of kind validation; a programming mistake (unknown id,
// wrong payload type) yields a plain error.
func (r *Registry) Validate(id string, payload interface{}) error {
	r.mu.RLock()
	want, ok := r.schemas[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, id)
	}
	if got := indirectType(reflect.TypeOf(payload)); got != want {
		return fmt.Errorf("validation: schema %q expects %s, got %v", id, want, got)
	}

	if err := r.validate.Struct(payload); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		fields := FormatValidationErrors(err)
		return apperror.Validation(fmt.Sprintf("Invalid %s payload", id), fields)
	}
	return nil
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
