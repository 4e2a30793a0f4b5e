package access

import (
	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// Actor is the authenticated caller an operation runs on behalf of.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) Is(role models.Role) bool { return a.Role == role }

func (a Actor) Self(id string) bool { return a.ID != "" && a.ID == id }

// requireRole fails unless the actor holds one of roles.
func requireRole(op string, a Actor, roles ...models.Role) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return apperr.Forbidden(op, "%s accounts may not do this", a.Role)
}

// requireSelf fails unless the actor is the given user with the given role.
func requireSelf(op string, a Actor, role models.Role, id string) error {
	if a.Role != role || !a.Self(id) {
		return apperr.Forbidden(op, "only the %s owning this record may do this", role)
	}
	return nil
}

// requireSelfOr lets the owner through, plus any actor holding one of roles.
func requireSelfOr(op string, a Actor, owner models.Role, id string, roles ...models.Role) error {
	if a.Role == owner && a.Self(id) {
		return nil
	}
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return apperr.Forbidden(op, "this %s record belongs to someone else", owner)
}
