package service

import "github.com/acquisitions/user-api/internal/core/domain"

// The authorization policy is a set of pure decision functions evaluated
// strictly before any mutating repository call. A denial must leave storage
// untouched.

// CanModifyUser decides whether requester may update the user identified by
// targetID. Only the owner or an admin may update a record, and only an
// admin may change a role (including their own record's role field for
// non-admins — a non-admin setting role on any update is denied).
func CanModifyUser(requester domain.Principal, targetID int64, changesRole bool) error {
	if requester.ID != targetID && !requester.IsAdmin() {
		return domain.ErrForbidden
	}
	if changesRole && !requester.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// CanDeleteUser decides whether requester may delete the user identified by
// targetID: owner or admin.
func CanDeleteUser(requester domain.Principal, targetID int64) error {
	if requester.ID != targetID && !requester.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
