package service

import (
	"github.com/google/uuid"

	"github.com/okunev/usermgmt/internal/model"
)

// CanModify reports whether the principal may update or delete the
// target user: owners may touch their own record, superusers may
// touch any. Reads and listing require only an authenticated
// principal and are not gated here.
func CanModify(principal model.User, targetID uuid.UUID) bool {
	return principal.ID == targetID || principal.IsSuperuser
}
