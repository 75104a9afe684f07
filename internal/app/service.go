/**
 * @description
 * This file defines the `Service` struct that carries the admin control
 * plane's business logic: vendor verification, payout approval, dispute
 * resolution, the finance overview projection, and the privileged ops tools.
 * The engines live in sibling files; this file holds the shared wiring.
 *
 * Key properties:
 * - Every state-mutating operation serializes on a per-resource-id lock and
 *   writes through a version-checked store transition, so concurrent
 *   mutations of the same record cannot interleave or clobber each other.
 * - Every successful transition appends exactly one audit entry (the store
 *   applies it atomically with the state change) and then fans the entry out
 *   to the event bus on a best-effort basis.
 *
 * @dependencies
 * - internal/store: the Repository interface the engines run against.
 * - pkg/rabbitmq: audit event fan-out for downstream consumers.
 */

package app

import (
	"context"
	"log"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/rabbitmq"
)

// Flags carries the feature gates and tunables the engines consult.
type Flags struct {
	ReadOnlyMode          bool
	EnableOpsTools        bool
	EnableReconciliation  bool
	OpsRateLimitPerMinute int
	OverviewAuditLimit    int
}

// OpsRateLimiter throttles privileged ops invocations per actor. A nil
// limiter disables throttling (demo mode without Redis).
type OpsRateLimiter interface {
	ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, windowSeconds int) (count int, retryAfterSeconds int, err error)
}

// Service provides the core business logic of the admin control plane.
type Service struct {
	repo    store.Repository
	events  rabbitmq.Publisher
	locks   *keyedMutex
	limiter OpsRateLimiter
	flags   Flags
}

// NewService creates a new admin service instance. limiter may be nil.
func NewService(repo store.Repository, events rabbitmq.Publisher, limiter OpsRateLimiter, flags Flags) *Service {
	if flags.OverviewAuditLimit <= 0 {
		flags.OverviewAuditLimit = 10
	}
	return &Service{
		repo:    repo,
		events:  events,
		locks:   newKeyedMutex(),
		limiter: limiter,
		flags:   flags,
	}
}

// publishAudit fans an already-persisted audit entry out to the event bus.
// Publishing is best-effort: the mutation has committed, so a broker outage
// is logged and swallowed rather than surfaced as an operation failure.
func (s *Service) publishAudit(ctx context.Context, entry domain.AuditLog) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAuditEvent(ctx, rabbitmq.AuditEvent{
		ID:           entry.ID,
		Actor:        entry.Actor,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Metadata:     entry.Metadata,
		Timestamp:    entry.CreatedAt,
	}); err != nil {
		log.Printf("level=warn component=service msg=\"audit event publish failed\" action=%s resource_id=%s err=%v",
			entry.Action, entry.ResourceID, err)
	}
}
