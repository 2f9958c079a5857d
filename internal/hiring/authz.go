package hiring

import (
	"strings"

	"github.com/hiredesk/hiredesk/internal/types"
)

// CanManage reports whether the principal may mutate applications on the
// job. Admins always may. Recruiters may when they own the job, matched by
// email or by owner ID; the ID match covers jobs created before email-based
// ownership was backfilled with identifiers. Every other role is denied.
// This gates status mutation only: reads and the public assessment-link flow
// are unauthenticated by design.
func CanManage(principal types.Principal, job *types.Job) bool {
	if principal.IsAdmin() {
		return true
	}
	if principal.Role != types.RoleRecruiter {
		return false
	}
	if job.OwnerEmail != "" && strings.EqualFold(job.OwnerEmail, principal.Email) {
		return true
	}
	return job.OwnerID == principal.UserID
}
