package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MetricsRecorder receives query timings and pool stats from the GORM callbacks
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(open, idle, inUse int)
}

const startTimeKey = "metrics:start_time"

// RegisterMetricsCallbacks hooks query timing collection into GORM
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	before := func(tx *gorm.DB) {
		tx.Set(startTimeKey, time.Now())
	}
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.Get(startTimeKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			recorder.RecordDBQuery(op, tx.Statement.Table, time.Since(start), tx.Error)
		}
	}

	if err := db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query")); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")); err != nil {
		return err
	}
	return nil
}

// StartDBStatsCollector periodically reports connection pool stats
// until the stop channel closes.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, logger *zap.Logger, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					logger.Warn("db stats collection failed", zap.Error(err))
					continue
				}
				stats := sqlDB.Stats()
				recorder.UpdateDBStats(stats.OpenConnections, stats.Idle, stats.InUse)
			}
		}
	}()
}
