// Package commands defines the brightrec CLI and wires dependencies for subcommands.
//
// Commands
//
//   - session begin   Start (or resume) a recovery session
//   - session qr      Print the recovery advertisement to show trusted connections
//   - session cancel  Abandon the recovery session
//   - sign            As a trusted connection, cosign a scanned advertisement
//   - accept          Offer a received cosignature to the recovery session
//   - restore         Complete recovery once two cosignatures are collected
//   - backup          Back up profile, connections, groups and photos
//   - trusted         Publish the trusted-connection list to the node
//
// # Implementation
//
// The root command loads configuration from the environment (and .env),
// applies flag overrides, initialises logging and builds the dependency graph
// before any subcommand runs.
package commands
