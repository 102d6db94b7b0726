package domain

import "fmt"

type SourceType string

const (
	SourceTypeCSV        SourceType = "csv"
	SourceTypeXLSX       SourceType = "xlsx"
	SourceTypeS3         SourceType = "s3"
	SourceTypeAzureBlob  SourceType = "azblob"
	SourceTypeSnowflake  SourceType = "snowflake"
	SourceTypeDatabricks SourceType = "databricks"
)

// SourceProfile names a configured data source and its type-specific options.
type SourceProfile struct {
	Name    string
	Type    SourceType
	Options map[string]string
}

func (p SourceProfile) Option(key string) string {
	return p.Options[key]
}

// RequireOption returns the option or an error naming the missing key.
func (p SourceProfile) RequireOption(key string) (string, error) {
	v := p.Options[key]
	if v == "" {
		return "", fmt.Errorf("profile %q (%s): option %q is required", p.Name, p.Type, key)
	}
	return v, nil
}

func (p SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Type, p.Name)
}

// DatasetStats summarises a warehouse table without loading its rows.
type DatasetStats struct {
	Records   int64
	FirstYear int
	LastYear  int
	// HasYears is false when no row carries a year.
	HasYears bool
}

func (s DatasetStats) String() string {
	if !s.HasYears {
		return fmt.Sprintf("%d records", s.Records)
	}
	return fmt.Sprintf("%d records, %d-%d", s.Records, s.FirstYear, s.LastYear)
}
