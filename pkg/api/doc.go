// Package api defines the wire shapes shared by all deskhive HTTP
// endpoints: the structured error envelope and its constructors.
package api
