// Package middleware groups the HTTP middleware used by the shell boundary:
// ray-id tagging (rayid) and the optional API-key check (auth).
package middleware
