package auth

import "github.com/dmitrijs2005/blogify/internal/common"

// RequireOwnership allows a mutation only when id is the owner of the
// resource. A nil identity yields common.ErrorUnauthorized, a different
// user common.ErrorForbidden.
func RequireOwnership(id *Identity, ownerID string) error {
	if id == nil {
		return common.ErrorUnauthorized
	}
	if id.ID == "" || id.ID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}
