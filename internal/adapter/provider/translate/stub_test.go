package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/salita/internal/domain"
)

func TestStub_Translate_Disabled(t *testing.T) {
	t.Parallel()

	got, err := NewStub().Translate(context.Background(), "kain", "auto", "en")
	if got != "" {
		t.Fatalf("expected empty translation, got %q", got)
	}
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}

	var svcErr *domain.ServiceError
	if !errors.As(err, &svcErr) || svcErr.Kind != domain.ServiceErrorDisabled {
		t.Fatalf("expected DISABLED service error, got %v", err)
	}
}
