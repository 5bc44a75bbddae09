// Package sessions is a client for a pool-managed dynamic sessions endpoint
// that runs Python code in remote, isolated interpreters.
//
// Every call is scoped to one session identifier; calls made with the same
// identifier reach the same interpreter, so variables and files uploaded to
// /mnt/data persist between them.
package sessions
