package auth

// CheckPermission verifies that claims grant the required permission.
// A token without a permissions claim is reported separately from a token
// whose permission set does not contain required.
func CheckPermission(claims *Claims, required string) error {
	if claims == nil || !claims.HasPermissionsClaim() {
		return ErrMissingPermissionsClaim
	}

	if !claims.HasPermission(required) {
		return ErrPermissionDenied
	}

	return nil
}
