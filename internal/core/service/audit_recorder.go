package service

import (
	"fmt"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// AuditRecorder builds audit entries for completed-in-memory mutations.
// It performs no I/O; the mutation coordinator persists the entry inside the
// same unit of work as the change it describes.
type AuditRecorder struct{}

// Entry returns the audit row for one mutation. The message format is stable
// and greppable: "<principal email> <verb> <EntityKind> <naturalKey>".
func (AuditRecorder) Entry(principal domain.Principal, op domain.Operation, entity domain.EntityKind, naturalKey string) domain.SystemLog {
	return domain.SystemLog{
		UserID: principal.ID,
		Action: fmt.Sprintf("%s %s %s %s", principal.Email, op.Verb(), entity, naturalKey),
	}
}
