package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	dbconfig "github.com/databricks/databricks-sdk-go/config"
	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	storesql "github.com/de-tools/sales-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
	sf "github.com/snowflakedb/gosnowflake"
)

const defaultTable = "sales"

type sqlSource struct {
	name   string
	db     *sql.DB
	reader storesql.SalesReader
}

// NewSQLSource reads the sales table through db. The source owns db and
// closes it in Close.
func NewSQLSource(name string, db *sql.DB, table string) (Source, error) {
	reader, err := storesql.NewSalesReader(db, table)
	if err != nil {
		return nil, err
	}
	return &sqlSource{name: name, db: db, reader: reader}, nil
}

func (s *sqlSource) Name() string {
	return fmt.Sprintf("%s/%s", s.name, s.reader.GetTable())
}

func (s *sqlSource) Load(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := s.reader.ReadSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	records, err := adapters.MapStoreSalesRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", s.Name()).Int("records", len(records)).Msg("loaded sales table")
	return records, nil
}

// Stats counts the table rows and reads their year range in one query.
func (s *sqlSource) Stats(ctx context.Context) (domain.DatasetStats, error) {
	stats, err := s.reader.GetSalesStats(ctx)
	if err != nil {
		return domain.DatasetStats{}, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return adapters.MapStoreSalesStatsToDomain(*stats), nil
}

func (s *sqlSource) Close() error {
	return s.db.Close()
}

// SnowflakeFactory reads "account", "user" and "password", plus optional
// "database", "schema", "warehouse", "role" and "table" options.
func SnowflakeFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	cfg, err := snowflakeConfig(profile)
	if err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}
	return openedSource(profile, db)
}

func snowflakeConfig(profile domain.SourceProfile) (*sf.Config, error) {
	cfg := &sf.Config{
		Database:  profile.Option("database"),
		Schema:    profile.Option("schema"),
		Warehouse: profile.Option("warehouse"),
		Role:      profile.Option("role"),
	}

	var err error
	if cfg.Account, err = profile.RequireOption("account"); err != nil {
		return nil, err
	}
	if cfg.User, err = profile.RequireOption("user"); err != nil {
		return nil, err
	}
	if cfg.Password, err = profile.RequireOption("password"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabricksFactory reads "http_path", plus optional "host", "token",
// "databricks_profile", "catalog", "schema" and "table" options. Host and
// token left unset are resolved the way the Databricks CLI does: from
// DATABRICKS_HOST and DATABRICKS_TOKEN, then from the named (or DEFAULT)
// section of ~/.databrickscfg.
func DatabricksFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	cfg, err := databricksConfig(profile)
	if err != nil {
		return nil, err
	}
	httpPath, err := profile.RequireOption("http_path")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("databricks", databricksDSN(cfg, httpPath, profile.Option("catalog"), profile.Option("schema")))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	return openedSource(profile, db)
}

func databricksConfig(profile domain.SourceProfile) (*dbconfig.Config, error) {
	cfg := &dbconfig.Config{
		Host:    profile.Option("host"),
		Token:   profile.Option("token"),
		Profile: profile.Option("databricks_profile"),
	}
	if err := cfg.EnsureResolved(); err != nil {
		return nil, fmt.Errorf("profile %q (%s): failed to resolve Databricks config: %w", profile.Name, profile.Type, err)
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("profile %q (%s): option %q is required (or set DATABRICKS_HOST)", profile.Name, profile.Type, "host")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("profile %q (%s): option %q is required (or set DATABRICKS_TOKEN)", profile.Name, profile.Type, "token")
	}
	return cfg, nil
}

func databricksDSN(cfg *dbconfig.Config, httpPath, catalog, schema string) string {
	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "https://"), "http://"), "/")
	if !strings.HasPrefix(httpPath, "/") {
		httpPath = "/" + httpPath
	}
	dsn := fmt.Sprintf("token:%s@%s:443%s", cfg.Token, host, httpPath)

	params := url.Values{}
	if catalog != "" {
		params.Set("catalog", catalog)
	}
	if schema != "" {
		params.Set("schema", schema)
	}
	if qp := params.Encode(); qp != "" {
		dsn = dsn + "?" + qp
	}
	return dsn
}

func openedSource(profile domain.SourceProfile, db *sql.DB) (Source, error) {
	table := profile.Option("table")
	if table == "" {
		table = defaultTable
	}

	src, err := NewSQLSource(profile.String(), db, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return src, nil
}

// Close releases the resources held by src, if any.
func Close(ctx context.Context, src Source) {
	closer, ok := src.(interface{ Close() error })
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("source", src.Name()).Msg("failed to close source")
	}
}
