// Package server runs the HTTP API of a bundle node with graceful shutdown.
package server
