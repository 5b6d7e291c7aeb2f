// Package server holds configuration for the HTTP boundary the agent
// exposes to the desktop shell.
package server
