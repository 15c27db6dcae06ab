package remote

import (
	"context"
	"net/http"

	"brightrec/internal/domain"
)

const (
	opSetTrusted    = "Set Trusted Connections"
	opSetSigningKey = "Set Signing Key"
)

// NodeHTTP is a domain.NodeClient posting operations to an identity node.
type NodeHTTP struct {
	*Client
}

// NewNodeHTTP returns a node client for base.
func NewNodeHTTP(base string, hc *http.Client) *NodeHTTP {
	return &NodeHTTP{Client: NewClient(base, hc)}
}

// SetTrustedOperation is the wire form of a trusted-connections update.
type SetTrustedOperation struct {
	Name string `json:"name"`
	domain.TrustedRequest
	V int `json:"v"`
}

// SetSigningKeyOperation is the wire form of a signing-key rotation.
type SetSigningKeyOperation struct {
	Name string `json:"name"`
	domain.SigningKeyRequest
	V int `json:"v"`
}

// OperationResponse is the node's acknowledgement of a queued operation.
type OperationResponse struct {
	Data struct {
		Hash string `json:"hash"`
	} `json:"data"`
}

// SetTrusted publishes the trusted-connection allow-list.
func (c *NodeHTTP) SetTrusted(ctx context.Context, req domain.TrustedRequest) error {
	op := SetTrustedOperation{Name: opSetTrusted, TrustedRequest: req, V: domain.OperationVersion}
	var out OperationResponse
	return c.do(ctx, http.MethodPost, "/operations", op, &out)
}

// SetSigningKey asks the node to rotate the identity's signing key. It makes
// a single attempt: a retry after a lost response would be rejected even
// though the rotation was applied.
func (c *NodeHTTP) SetSigningKey(ctx context.Context, req domain.SigningKeyRequest) error {
	op := SetSigningKeyOperation{Name: opSetSigningKey, SigningKeyRequest: req, V: domain.OperationVersion}
	once := *c.Client
	once.MaxElapsed = 0
	var out OperationResponse
	return once.do(ctx, http.MethodPost, "/operations", op, &out)
}

var _ domain.NodeClient = (*NodeHTTP)(nil)
