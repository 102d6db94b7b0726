package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// BlobDownloader is the subset of the Blob Storage client used to fetch a dataset
type BlobDownloader interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

type azureBlobSource struct {
	client     BlobDownloader
	accountURL string
	container  string
	blob       string
	sheet      string
}

// NewAzureBlobSource reads a CSV blob, or an XLSX workbook when the blob name
// ends in ".xlsx".
func NewAzureBlobSource(client BlobDownloader, accountURL, container, blob, sheet string) Source {
	return &azureBlobSource{
		client:     client,
		accountURL: strings.TrimSuffix(accountURL, "/"),
		container:  container,
		blob:       blob,
		sheet:      sheet,
	}
}

// AzureBlobFactory reads "container" and "blob", plus either "account_url"
// or "account". "tenant_id" and "sheet" are optional; credentials come from
// the default Azure chain (environment, managed identity, Azure CLI).
func AzureBlobFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	accountURL, err := azureAccountURL(profile)
	if err != nil {
		return nil, err
	}
	container, err := profile.RequireOption("container")
	if err != nil {
		return nil, err
	}
	blob, err := profile.RequireOption("blob")
	if err != nil {
		return nil, err
	}

	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: profile.Option("tenant_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for %s: %w", accountURL, err)
	}

	return NewAzureBlobSource(client, accountURL, container, blob, profile.Option("sheet")), nil
}

func azureAccountURL(profile domain.SourceProfile) (string, error) {
	if u := profile.Option("account_url"); u != "" {
		return u, nil
	}
	account := profile.Option("account")
	if account == "" {
		return "", fmt.Errorf("profile %q (%s): option %q or %q is required", profile.Name, profile.Type, "account_url", "account")
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/", account), nil
}

func (s *azureBlobSource) Name() string {
	return fmt.Sprintf("%s/%s/%s", s.accountURL, s.container, s.blob)
}

func (s *azureBlobSource) Load(ctx context.Context) ([]domain.TransactionRecord, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", s.Name(), err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("blob", s.Name()).Msg("failed to close blob body")
		}
	}()

	return readObject(ctx, s.Name(), s.blob, resp.Body, s.sheet)
}
