package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// cidMetadataKey is the object metadata key S3-compatible pinning services
// use to report the content identifier of a stored object.
const cidMetadataKey = "cid"

type S3Config struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	GatewayURL string
}

// S3API is the part of *s3.Client the store needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Store pins content through an S3-compatible pinning gateway: the object
// is written, then the CID is read back from its metadata.
type S3Store struct {
	api     S3API
	bucket  string
	gateway string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return NewS3StoreWithAPI(client, cfg.Bucket, cfg.GatewayURL), nil
}

func NewS3StoreWithAPI(api S3API, bucket, gateway string) *S3Store {
	return &S3Store{api: api, bucket: bucket, gateway: gateway}
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader) (string, error) {
	// The SDK needs a seekable body to sign the payload.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read asset: %w", ErrUpload, err)
	}

	key := uuid.NewString()

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %w", ErrUpload, err)
	}

	head, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("%w: head object: %w", ErrUpload, err)
	}

	var raw string
	for k, v := range head.Metadata {
		if strings.EqualFold(k, cidMetadataKey) {
			raw = v
			break
		}
	}
	if raw == "" {
		return "", fmt.Errorf("%w: object %s has no %s metadata", ErrUpload, key, cidMetadataKey)
	}

	contentID, err := parseContentID(raw)
	if err != nil {
		return "", err
	}

	return GatewayURL(s.gateway, contentID), nil
}

func (s *S3Store) UploadJSON(ctx context.Context, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: encode document: %w", ErrUpload, err)
	}
	return s.Upload(ctx, bytes.NewReader(data))
}
