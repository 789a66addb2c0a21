// Package cli provides the interactive argentctl command-line client.
//
// It wires configuration, the local credential database, the HTTP API
// client, and an interactive REPL driven by the session manager. Typical
// flow: log in, fetch the profile, edit the display name, log out.
//
// Key commands:
//   - login / logout
//   - profile — fetch and show the display name
//   - edit — change first/last name
//   - whoami — decode the stored credential locally, no network call
//   - status — show the session projection
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
