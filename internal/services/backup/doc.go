// Package backup keeps the remote encrypted copy of the user's social graph
// current.
//
// Every artifact is encrypted under the user's password and stored in the
// recovery store under the hashed identity: the structural bundle under
// "data", each photo under its owner's id. Photo uploads are best-effort;
// a failed photo is reported and logged but never aborts the run.
package backup
