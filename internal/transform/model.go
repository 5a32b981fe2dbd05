package transform

import (
	"fmt"
	"strings"

	"github.com/vvka-141/swapify/pkg/swapify"
)

// ModelIdentifier names a model as an (app label, model name) pair.
type ModelIdentifier struct {
	Namespace string
	Name      string
}

// ParseModel parses "<app_label>.<ModelName>". The string must contain exactly
// one dot with non-empty text on both sides.
func ParseModel(s string) (ModelIdentifier, error) {
	if strings.Count(s, ".") != 1 {
		return ModelIdentifier{}, fmt.Errorf("%w: %q must have the form <app_label>.<ModelName>", swapify.ErrInvalidModelIdentifier, s)
	}
	namespace, name, _ := strings.Cut(s, ".")
	if namespace == "" || name == "" {
		return ModelIdentifier{}, fmt.Errorf("%w: %q has an empty app label or model name", swapify.ErrInvalidModelIdentifier, s)
	}
	return ModelIdentifier{Namespace: namespace, Name: name}, nil
}

// String returns the dotted form, e.g. "auth.User".
func (m ModelIdentifier) String() string {
	return m.Namespace + "." + m.Name
}
