package vfs

import (
	"go.uber.org/zap"
)

// Quota enforces the per-tenant storage ceiling. Usage is recomputed from
// disk on every query rather than cached: the recomputation cost buys
// freedom from drift between a counter and actual disk state.
type Quota struct {
	resolver *Resolver
	tree     *Tree
	limit    int64
	log      *zap.Logger
}

// NewQuota creates a tracker with a single ceiling shared by all tenants.
func NewQuota(resolver *Resolver, tree *Tree, limit int64, log *zap.Logger) *Quota {
	return &Quota{resolver: resolver, tree: tree, limit: limit, log: log}
}

// Limit returns the configured ceiling in bytes.
func (q *Quota) Limit() int64 {
	return q.limit
}

// UsedBytes computes the tenant's current usage as the recursive size of
// its root directory.
func (q *Quota) UsedBytes(tenantID string) (int64, error) {
	root, err := q.resolver.Resolve(tenantID, "")
	if err != nil {
		return 0, err
	}
	return q.tree.DirectorySize(root), nil
}

// CheckAndReserve rejects an operation that would grow usage past the
// ceiling. Callers pass the delta for overwrites so shrinking or same-size
// edits of quota-exhausted tenants stay possible. The check is not
// transactional against concurrent writers from the same tenant; overshoot
// is bounded by a single in-flight write batch and self-corrects on the
// next query.
func (q *Quota) CheckAndReserve(tenantID string, additional int64) error {
	if additional <= 0 {
		return nil
	}
	used, err := q.UsedBytes(tenantID)
	if err != nil {
		return err
	}
	if used+additional > q.limit {
		q.log.Info("quota rejection",
			zap.String("tenant", tenantID),
			zap.Int64("used", used),
			zap.Int64("limit", q.limit),
			zap.Int64("requested", additional),
		)
		return &QuotaError{Used: used, Limit: q.limit, Requested: additional}
	}
	return nil
}
