//go:generate mockgen -source=contracts.go -destination=commands_mocks_test.go -package=commands_test

package commands

import (
	"context"

	"ecopickup/internal/domain"
	"ecopickup/internal/service/lifecycle"
)

// LifecyclePort is the subset of the lifecycle orchestrator driven by commands.
type LifecyclePort interface {
	Assign(ctx context.Context, req lifecycle.AssignRequest) (domain.AssignResult, error)
	Complete(ctx context.Context, req lifecycle.CompleteRequest) (domain.CompleteResult, error)
}
