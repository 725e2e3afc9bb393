package introspect

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Gorm reads columns through the GORM migrator, so it works with any
// dialect GORM has a driver for.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// OpenGormSQLite opens a SQLite database through GORM with logging off.
func OpenGormSQLite(path string) (*Gorm, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	return &Gorm{db: db}, nil
}

// DB exposes the underlying handle.
func (g *Gorm) DB() *gorm.DB { return g.db }

// Close closes the underlying connection pool.
func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Columns returns the column names of table.
func (g *Gorm) Columns(ctx context.Context, table string) ([]string, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	m := g.db.WithContext(ctx).Migrator()
	if !m.HasTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	types, err := m.ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}
	names := make([]string, 0, len(types))
	for _, ct := range types {
		names = append(names, ct.Name())
	}
	return names, nil
}

// TableName derives the conventional table name of a model class:
// "User" -> "users", "AdminAccount" -> "admin_accounts".
func TableName(class string) string {
	return schema.NamingStrategy{}.TableName(class)
}
