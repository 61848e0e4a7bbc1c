// Package http implements the HTTP API of a bundle node.
//
// Carriers upload and download bundle files and reconcile their storage
// through the inventory endpoint. Local applications hand ADUs to the node.
// Operators manage routes and inspect cursors through the admin group, which
// is guarded by a JWT bearer token.
package http
