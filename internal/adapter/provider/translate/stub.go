package translate

import (
	"context"

	"github.com/heartmarshall/salita/internal/domain"
)

// Stub stands in for the proxy when translation is disabled.
type Stub struct{}

// NewStub creates a disabled translator.
func NewStub() *Stub { return &Stub{} }

// Translate always fails with a disabled service error.
func (s *Stub) Translate(context.Context, string, string, string) (string, error) {
	return "", domain.NewServiceError(domain.ServiceErrorDisabled, nil)
}
