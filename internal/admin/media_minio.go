// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/mumocomics/mumoweb/internal/platform/constants"
)

// allowedCoverExtensions maps upload extensions to their media types.
var allowedCoverExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// MinioMediaStore implements [MediaStore] over S3-compatible object storage.
//
// Objects are stored under the same path the public site serves them from,
// so the stored key doubles as the comic record's coverImage value. Bytes
// pass through untouched; resizing and compression happen upstream in the
// studio's authoring tools.
type MinioMediaStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioMediaStore constructs a [MinioMediaStore] over the given bucket.
func NewMinioMediaStore(client *minio.Client, bucket string, logger *slog.Logger) *MinioMediaStore {
	return &MinioMediaStore{client: client, bucket: bucket, logger: logger}
}

/*
UploadCover stores a cover image and returns its public path.

Parameters:
  - slug: string (The comic the cover belongs to)
  - extension: string (Original file extension, used for the media type)
  - payload: []byte (The raw image bytes)

Returns:
  - string: The public path (e.g. "/images/comics/mumo-meets-world.png")
  - error: An unsupported extension or a storage failure
*/
func (store *MinioMediaStore) UploadCover(ctx context.Context, slug, extension string, payload []byte) (string, error) {
	extension = strings.ToLower(extension)

	contentType, ok := allowedCoverExtensions[extension]
	if !ok {
		return "", fmt.Errorf("admin: unsupported cover extension %q", extension)
	}

	publicPath := constants.CoverImagePrefix + slug + extension

	// The bucket key mirrors the public path minus the leading slash.
	objectKey := strings.TrimPrefix(publicPath, "/")

	_, err := store.client.PutObject(ctx, store.bucket, objectKey,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("admin: upload cover for %s: %w", slug, err)
	}

	store.logger.Info("cover_uploaded",
		slog.String("slug", slug),
		slog.String("object", objectKey),
		slog.Int("bytes", len(payload)),
	)

	return publicPath, nil
}
