// Package singleinstance owns the loopback TCP endpoint of the resident
// process and lets a second invocation delegate hotkey actions to it.
//
// Protocol, one request per connection, newline terminated:
//
//	PING      -> PONG
//	COMMANDER -> OK | ERROR\n<message>
//	EXPLAIN   -> OK | ERROR\n<message>
package singleinstance

import (
	"context"
	"errors"

	"ctrl-ai/src/ai"
)

// ErrNoResident is returned by Client.Trigger when nothing answers PING.
var ErrNoResident = errors.New("singleinstance: no resident instance")

// Server owns the TCP endpoint and answers trigger requests.
type Server interface {
	// Start binds the first port of the range; an occupied port is an error.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection as a Conn, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn represents one client connection and exposes request + response API.
type Conn interface {
	Request() Request
	RespondOK() error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	Close() error
}

// Request represents a single trigger request.
type Request struct {
	Mode ai.Mode
}

// Client delegates a trigger to a running resident.
type Client interface {
	Trigger(ctx context.Context, mode ai.Mode) error
}

// NewServer returns TCP implementation.
func NewServer(ports PortRange) Server { return newTcpServer(ports.normalize()) }

// NewClient returns TCP implementation.
func NewClient(ports PortRange) Client { return newTcpClient(ports.normalize()) }
