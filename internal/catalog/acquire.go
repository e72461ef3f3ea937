package catalog

import (
	"context"
	"fmt"

	"albumcheck/internal/services"
)

// MarkAcquired sets downloaded = 1 and tagged = 1 on every track whose
// playlist_id is one of groupIDs, committing once. Lock contention is retried
// with backoff; any other failure rolls back and wraps services.ErrStoreWrite.
// Calling it again with the same groups leaves the catalog unchanged.
func (s *Store) MarkAcquired(ctx context.Context, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}
	args := make([]any, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}
	query := `UPDATE tracks SET downloaded = 1, tagged = 1 WHERE playlist_id IN (` + makePlaceholders(len(groupIDs)) + `)`

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return services.Wrap(services.ErrStoreWrite, "catalog", "mark acquired", fmt.Sprintf("groups %v", groupIDs), err)
	}
	return nil
}
