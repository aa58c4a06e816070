package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// AzureBlobStorage implements Storage on an Azure Blob Storage container
type AzureBlobStorage struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewAzureBlobStorage connects to the account and makes sure the container exists
func NewAzureBlobStorage(ctx context.Context, connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("Azure Blob Storage initialized", zap.String("container", containerName))

	return &AzureBlobStorage{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// Upload streams data into a new blob under prefix
func (s *AzureBlobStorage) Upload(ctx context.Context, prefix, filename, contentType string, data io.Reader) (string, int64, error) {
	blobName := objectKey(prefix, filename)

	reader := &countingReader{r: data}
	_, err := s.client.UploadStream(ctx, s.containerName, blobName, reader, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
		Metadata: map[string]*string{
			"originalfilename": &filename,
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	s.logger.Info("File uploaded to Azure Blob Storage",
		zap.String("blobName", blobName),
		zap.String("contentType", contentType),
		zap.Int64("size", reader.count),
	)

	return blobName, reader.count, nil
}

type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Download opens a blob for reading
func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}
	return resp.Body, nil
}

// Delete removes a blob; missing blobs are ignored
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	_, err := s.client.DeleteBlob(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	s.logger.Debug("File deleted from Azure Blob Storage", zap.String("blobName", storagePath))
	return nil
}
