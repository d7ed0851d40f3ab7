package access

import (
	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/auth"
)

// ListScope restricts a task listing. It is applied inside the store
// query so totals and pages only count visible tasks.
type ListScope struct {
	// Unrestricted lists every task.
	Unrestricted bool
	// Participant limits the listing to tasks created by or assigned to
	// this identity. Ignored when Unrestricted is set.
	Participant uuid.UUID
}

// ScopeListQuery returns the listing scope for identity. Identities that
// could not pass ListTasks get a scope that matches nothing.
func ScopeListQuery(identity auth.Identity) ListScope {
	if !Authorize(identity, ListTasks, nil).Allowed {
		return ListScope{}
	}
	if identity.IsAdmin() {
		return ListScope{Unrestricted: true}
	}
	return ListScope{Participant: identity.ID}
}

// Includes reports whether res falls inside the scope.
func (s ListScope) Includes(res Resource) bool {
	if s.Unrestricted {
		return true
	}
	if s.Participant == uuid.Nil {
		return false
	}
	return res.CreatedBy == s.Participant || res.AssignedTo == s.Participant
}
