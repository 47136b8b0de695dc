package impl

import (
	"context"
	"log/slog"

	domainerrors "journal/internal/domain/errors"
	logs "journal/internal/infra/log"
)

// logStoreFault records store faults with the failing operation and returns
// err unchanged. Errors of any other kind pass through silently.
func logStoreFault(ctx context.Context, logger *slog.Logger, err error, op string) error {
	if err != nil && domainerrors.IsKind(err, domainerrors.KindStore) {
		logs.FromContext(ctx, logger).Error("Store fault", slog.String("operation", op), slog.Any("error", err))
	}

	return err
}
