package facades

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

// ErrForeignURL is returned by Delete for URLs this store did not produce.
var ErrForeignURL = errors.New("url does not belong to this media store")

// S3Options configures the S3 client and the object layout.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. a MinIO endpoint; enables path-style addressing
	AccessKey string // optional; the default credential chain is used when empty
	SecretKey string
	PublicURL string // optional public base URL; objects are addressed as PublicURL/key
	KeyPrefix string
}

// NewS3Client builds an S3 client from opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// MediaS3Facade stores uploaded media in an S3 bucket.
type MediaS3Facade struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	publicURL string
}

// NewMediaS3Facade creates a new facade over client.
func NewMediaS3Facade(client *s3.Client, opts S3Options) *MediaS3Facade {
	return &MediaS3Facade{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    opts.Bucket,
		keyPrefix: strings.Trim(opts.KeyPrefix, "/"),
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}
}

// Upload stores the file at localPath under a unique key and returns its URL.
// The local file is removed whether or not the upload succeeds.
func (f *MediaS3Facade) Upload(ctx context.Context, localPath string) (string, error) {
	defer removeLocal(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	key := objectKey(f.keyPrefix, localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	out, err := f.uploader.Upload(ctx, input)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to upload media", "bucket", f.bucket, "key", key, "error", err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	location := out.Location
	if f.publicURL != "" {
		location = f.publicURL + "/" + key
	}

	logger.FromContext(ctx).Infow("media uploaded", "bucket", f.bucket, "key", key, "url", location)
	return location, nil
}

// Delete removes the object addressed by rawURL.
func (f *MediaS3Facade) Delete(ctx context.Context, rawURL string) error {
	key, err := f.keyFromURL(rawURL)
	if err != nil {
		return err
	}

	_, err = f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to delete media", "bucket", f.bucket, "key", key, "error", err)
		return fmt.Errorf("delete %s: %w", key, err)
	}

	logger.FromContext(ctx).Infow("media deleted", "bucket", f.bucket, "key", key)
	return nil
}

// keyFromURL recovers the object key from a URL produced by Upload.
// Both virtual-hosted and path-style URLs are accepted.
func (f *MediaS3Facade) keyFromURL(rawURL string) (string, error) {
	if f.publicURL != "" && strings.HasPrefix(rawURL, f.publicURL+"/") {
		return strings.TrimPrefix(rawURL, f.publicURL+"/"), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "", ErrForeignURL
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimPrefix(path, f.bucket+"/")
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	if f.keyPrefix != "" && !strings.HasPrefix(path, f.keyPrefix+"/") {
		return "", ErrForeignURL
	}
	return path, nil
}

// objectKey builds "<prefix>/<uuid>-<base name>" keeping the original extension.
func objectKey(prefix, localPath string) string {
	name := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeName(filepath.Base(localPath)))
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func removeLocal(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warnw("failed to remove temp file", "path", path, "error", err)
	}
}
