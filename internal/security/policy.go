package security

import "time"

// LockedOut reports whether an account with the given failed-attempt count
// may no longer attempt to log in. Checked before password comparison.
func LockedOut(failedAttempts, maxAttempts int) bool {
	return failedAttempts >= maxAttempts
}

// ResetTokenValid reports whether a password reset token issued with the
// given expiry is still usable at time now. A nil expiry alongside a set
// token is an invalid state and is treated as expired.
func ResetTokenValid(expires *time.Time, now time.Time) bool {
	if expires == nil {
		return false
	}
	return now.Before(*expires)
}
