package database

import (
	"database/sql"
	"time"

	"coscribe/pkg/logger"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
)

// Connect opens a Postgres pool and verifies it is actually alive.
// The ping is retried a few times in case of temporary DNS/network blips.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	err = retry.Do(
		db.Ping,
		retry.Attempts(5),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		}),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Sugar.Info("Successfully connected to the database")
	return db, nil
}
