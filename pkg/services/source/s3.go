package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultRegion = "us-east-1" // Default region if neither the profile nor the environment sets one
)

// ObjectGetter is the subset of the S3 client used to fetch a dataset
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client ObjectGetter
	bucket string
	key    string
	sheet  string
}

// NewS3Source reads a CSV object, or an XLSX workbook when key ends in ".xlsx".
func NewS3Source(client ObjectGetter, bucket, key, sheet string) Source {
	return &s3Source{client: client, bucket: bucket, key: key, sheet: sheet}
}

// S3Factory reads the "bucket" and "key" options. "region", "aws_profile"
// and "sheet" are optional; credentials come from the default AWS chain.
func S3Factory(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	bucket, err := profile.RequireOption("bucket")
	if err != nil {
		return nil, err
	}
	key, err := profile.RequireOption("key")
	if err != nil {
		return nil, err
	}

	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if region := profile.Option("region"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if awsProfile := profile.Option("aws_profile"); awsProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(awsProfile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewS3Source(s3.NewFromConfig(cfg), bucket, key, profile.Option("sheet")), nil
}

func (s *s3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *s3Source) Load(ctx context.Context) ([]domain.TransactionRecord, error) {
	logger := zerolog.Ctx(ctx)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.Name(), err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("object", s.Name()).Msg("failed to close object body")
		}
	}()

	return readObject(ctx, s.Name(), s.key, out.Body, s.sheet)
}

// readObject parses a downloaded dataset: an XLSX workbook when key ends in
// ".xlsx", CSV otherwise.
func readObject(ctx context.Context, name, key string, body io.Reader, sheet string) ([]domain.TransactionRecord, error) {
	if strings.HasSuffix(strings.ToLower(key), ".xlsx") {
		f, err := excelize.OpenReader(body)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", name, err)
		}
		defer closeWorkbook(ctx, f)
		return readWorkbook(ctx, name, f, sheet)
	}

	return readCSV(ctx, name, body)
}
