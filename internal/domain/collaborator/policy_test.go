package collaborator_test

import (
	"errors"
	"testing"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

func TestAuthorizeOwnerOnly(t *testing.T) {
	t.Parallel()

	record := domain.Collaborator{ID: 1, UserID: 5}
	actions := []domain.Action{domain.ActionView, domain.ActionUpdate, domain.ActionDelete}

	for _, action := range actions {
		if err := domain.Authorize(5, action, record); err != nil {
			t.Fatalf("owner should be allowed to %s, got %v", action, err)
		}
		if err := domain.Authorize(6, action, record); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("non-owner should be denied %s, got %v", action, err)
		}
	}
}

func TestAuthorizeUnknownActionIsDenied(t *testing.T) {
	t.Parallel()

	record := domain.Collaborator{ID: 1, UserID: 5}
	if err := domain.Authorize(5, domain.Action("export"), record); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
