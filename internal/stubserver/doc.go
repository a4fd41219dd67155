// Package stubserver is a development backend for the PeerPoint client. It
// serves the platform API over HTTP/JSON from in-memory state, seeded with
// sample users, doubts and teams, so the client can be exercised end to end
// without the real platform.
//
// Accounts are password-protected (bcrypt) and sessions are HS256 JWTs, the
// same scheme the real platform uses, so auth flows behave realistically.
// State is lost on restart.
package stubserver
