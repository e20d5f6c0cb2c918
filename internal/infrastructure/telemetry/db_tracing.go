package telemetry

import (
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	DBSystem   string // postgresql or sqlite
	LogFullSQL bool   // include bound variables in span statements (development only)
}

// DBTracingPlugin is a GORM plugin that creates a span per statement through
// otelgorm and annotates it with the table and affected rows.
type DBTracingPlugin struct {
	config DBTracingConfig
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig) *DBTracingPlugin {
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	return &DBTracingPlugin{config: cfg}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "shopledger:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	registrations := []error{
		cb.Create().After("gorm:create").Register("shopledger:annotate_create", p.annotate),
		cb.Query().After("gorm:query").Register("shopledger:annotate_query", p.annotate),
		cb.Update().After("gorm:update").Register("shopledger:annotate_update", p.annotate),
		cb.Row().After("gorm:row").Register("shopledger:annotate_row", p.annotate),
		cb.Raw().After("gorm:raw").Register("shopledger:annotate_raw", p.annotate),
	}
	return errors.Join(registrations...)
}

func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
	}
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
