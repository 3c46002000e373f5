package auth

import (
	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// RequireRole checks the identity's role against the allowed set and returns
// common.ErrForbidden when it is not a member. Every privileged operation
// goes through this gate before touching state.
func RequireRole(identity Identity, allowed ...models.Role) error {
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return common.ErrForbidden
}
