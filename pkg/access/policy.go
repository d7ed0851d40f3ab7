// Package access decides who may do what to which task.
//
// Authorize is a pure function of its inputs: role rules and ownership
// rules are looked up in one table keyed by Operation. Anything the table
// does not grant is denied.
package access

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
)

// Operation tags every guarded use case.
type Operation uint8

const (
	CreateTask Operation = iota + 1
	ReadTask
	ListTasks
	UpdateTask
	DeleteTask
	ReadAnalytics
	ManageUsers
)

var operationNames = map[Operation]string{
	CreateTask:    "CreateTask",
	ReadTask:      "ReadTask",
	ListTasks:     "ListTasks",
	UpdateTask:    "UpdateTask",
	DeleteTask:    "DeleteTask",
	ReadAnalytics: "ReadAnalytics",
	ManageUsers:   "ManageUsers",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}

// Resource is the ownership view of a task.
type Resource struct {
	ID         uuid.UUID
	CreatedBy  uuid.UUID
	AssignedTo uuid.UUID
}

// Decision is the outcome of Authorize. The zero value denies.
type Decision struct {
	Allowed bool
	Reason  string
	// Hidden is set on denials that must look like a missing resource.
	Hidden bool
}

// Err converts a denial into the error taxonomy: ErrNotFound for hidden
// denials, ErrForbidden otherwise.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Hidden:
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, d.Reason)
	default:
		return fmt.Errorf("%w: %s", apperr.ErrForbidden, d.Reason)
	}
}

// grant is the weakest relationship to a resource that suffices.
type grant uint8

const (
	grantAdmin grant = iota
	grantAuthenticated
	grantParticipant
	grantCreator
)

type rule struct {
	grant grant
	// needsResource rules deny when no resource is supplied.
	needsResource bool
	// hideDenial collapses a denial into NotFound so that callers cannot
	// probe for resources they may not see.
	hideDenial bool
}

// policy lists every operation; admins pass every rule in it.
var policy = map[Operation]rule{
	ReadAnalytics: {grant: grantAdmin},
	ManageUsers:   {grant: grantAdmin},
	CreateTask:    {grant: grantAuthenticated},
	ListTasks:     {grant: grantAuthenticated},
	ReadTask:      {grant: grantParticipant, needsResource: true, hideDenial: true},
	UpdateTask:    {grant: grantParticipant, needsResource: true},
	DeleteTask:    {grant: grantCreator, needsResource: true},
}

// Authorize returns the decision for identity performing op on res. res
// may be nil for operations that are not scoped to a single task.
func Authorize(identity auth.Identity, op Operation, res *Resource) Decision {
	r, ok := policy[op]
	if !ok {
		return Decision{Reason: "unknown operation " + op.String()}
	}
	deny := func(reason string) Decision {
		return Decision{Reason: reason, Hidden: r.hideDenial}
	}
	if identity.ID == uuid.Nil || !identity.Active || !identity.Role.Valid() {
		return deny("identity is not usable")
	}
	if r.needsResource && res == nil {
		return deny(op.String() + " requires a resource")
	}
	if identity.IsAdmin() {
		return Decision{Allowed: true}
	}

	switch r.grant {
	case grantAuthenticated:
		return Decision{Allowed: true}
	case grantParticipant:
		if identity.ID == res.CreatedBy || identity.ID == res.AssignedTo {
			return Decision{Allowed: true}
		}
		return deny("not the creator or assignee")
	case grantCreator:
		if identity.ID == res.CreatedBy {
			return Decision{Allowed: true}
		}
		return deny("not the creator")
	default:
		return deny(op.String() + " requires the admin role")
	}
}

// Check is Authorize followed by Decision.Err.
func Check(identity auth.Identity, op Operation, res *Resource) error {
	return Authorize(identity, op, res).Err()
}
