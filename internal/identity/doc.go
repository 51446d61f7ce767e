// Package identity models the authenticated user, the auth backend client,
// and the on-disk current-identity cache that survives restarts.
package identity
