package repository

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/internal/core/ports"
)

// NodeID is the unique identifier for the resolver factory Graft node.
const NodeID graft.ID = "adapter.repository"

func init() {
	graft.Register(graft.Node[ports.ResolverFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ResolverFactory, error) {
			return NewFactory(), nil
		},
	})
}
