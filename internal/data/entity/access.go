package entity

import "errors"

var (
	ErrWrongProvider     = errors.New("account uses an external login provider")
	ErrIncorrectPassword = errors.New("password is incorrect")
	ErrDeactivated       = errors.New("account has been deactivated")
	ErrPendingApproval   = errors.New("recruiter account is pending admin approval")
	ErrRejected          = errors.New("recruiter account has been rejected")
	ErrBlocked           = errors.New("account has been blocked")
)

// CheckLogin decides whether a local-credential login may proceed.
// The checks mirror the login order: provider, credentials, active
// flag, then recruiter approval state.
func CheckLogin(user *User, credentialCheckPassed bool) error {
	if user.AuthProvider != ProviderLocal {
		return ErrWrongProvider
	}
	if !credentialCheckPassed {
		return ErrIncorrectPassword
	}
	if !user.IsActive {
		return ErrDeactivated
	}

	if user.Role == RoleRecruiter && user.AccountStatus != AccountApproved {
		switch user.AccountStatus {
		case AccountPending:
			return ErrPendingApproval
		case AccountRejected:
			return ErrRejected
		default:
			return ErrBlocked
		}
	}

	return nil
}

// CanPerformRecruiterAction gates job-mutating routes. Read-only and
// profile routes stay open to unapproved recruiters so they can see
// why they are gated.
func CanPerformRecruiterAction(role UserRole, status AccountStatus, isMutatingJobRoute bool) bool {
	if !isMutatingJobRoute {
		return true
	}
	if role != RoleRecruiter {
		return true
	}
	return status == AccountApproved
}
