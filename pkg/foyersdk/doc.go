// Package foyersdk provides the wire types and a small HTTP client for the
// foyer invitation service. The server handlers and the client share these
// types so the two sides cannot drift apart.
package foyersdk
