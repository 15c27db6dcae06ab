// Package domain defines core data models, contracts and the error taxonomy
// shared across the recovery and backup flows.
// Plain types live in domain/types and contracts in domain/interfaces; both
// are re-exported here for compact imports.
package domain
