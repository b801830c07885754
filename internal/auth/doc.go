// Package auth provides the authorization primitives for the casting agency API.
//
// This package implements:
//   - Bearer token extraction from the Authorization header
//   - The verified claim set produced by the token verifier
//   - Permission enforcement (exact match against the "permissions" claim)
//   - The classified error taxonomy shared by the guard components
//
// Every protected operation declares exactly one required permission and
// must pass extraction, verification and enforcement before it runs.
package auth
