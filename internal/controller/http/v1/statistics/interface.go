package statistics

import (
	"context"

	"hrms/backend/internal/repository/storage/statistics"
)

type Statistics interface {
	Get(ctx context.Context) (statistics.GetResponse, error)
}
