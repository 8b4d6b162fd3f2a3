package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

// DB is the single store handle shared by the registry, event log and tracker.
// It is opened once at process start and closed at shutdown.
type DB struct {
	Conn *gorm.DB
}

func Open(dialector gorm.Dialector) (*DB, error) {
	log := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// sqlite has one writer; a single connection also keeps the per-connection
		// pragmas and a memory database alive.
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign key support: %w", err)
		}
		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("set sqlite journal mode: %w", err)
		}
	}

	if err := conn.AutoMigrate(&models.Bin{}, &models.HistoryEvent{}, &models.Collector{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyDBPath); !found {
		dbPath = "prioribin.db"
	}
	return UseSqliteFileDialector(dbPath)
}

func UseSqliteFileDialector(path string) gorm.Dialector {
	return sqlite.Open(path)
}

// UseMemorySqliteDialector returns a private in-memory database, a fresh one per call.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
