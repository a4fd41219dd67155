// Package cli provides the interactive PeerPoint terminal client.
//
// It wires configuration, the local credential store, the HTTP API client,
// the session manager, and an interactive REPL whose navigation is filtered
// through the access guard. Typical flow: restore a saved session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Signup / Logout with persistent sessions
//   - Browse, filter, post and answer doubts
//   - Team formation: list, create, teammate suggestions
//   - Role-specific dashboard and a study-suggestion feed
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
