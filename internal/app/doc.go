// Package app loads configuration and wires stores, remote clients and
// services into the dependency graph the CLI runs against.
package app
