package river

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riversqlite"
	"github.com/riverqueue/river/rivermigrate"
)

// QueueNotifications is the queue trade events are worked from.
const QueueNotifications = "notifications"

// Setup migrates River's tables on db and returns a client with the
// notification worker registered. The caller owns Start and Stop.
func Setup(ctx context.Context, db *sql.DB, dispatcher Dispatcher, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver := riversqlite.New(db)

	// River versions river_job, river_leader and friends on its own, apart
	// from the goose migrations.
	migrator, err := rivermigrate.New(driver, &rivermigrate.Config{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("creating river migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return nil, fmt.Errorf("running river migrations: %w", err)
	}
	if len(res.Versions) > 0 {
		logger.InfoContext(ctx, "river migrations applied", "count", len(res.Versions))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewNotificationWorker(dispatcher))

	client, err := river.NewClient(driver, &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			QueueNotifications: {MaxWorkers: 2},
		},
		Workers: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("creating river client: %w", err)
	}

	return client, nil
}
