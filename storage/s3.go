package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"reco-review/config"
	"reco-review/models"
)

// ObjectAPI ist der Teil des S3-Clients, den diese Anwendung nutzt.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpunkt.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.S3URL,
				SigningRegion:     cfg.S3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadFile lädt eine Datei ins S3 hoch.
func UploadFile(ctx context.Context, client ObjectAPI, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

// S3Store hält den Katalog als einzelnes Objekt in einem Bucket.
type S3Store struct {
	Client ObjectAPI
	Bucket string
	Key    string
}

// NewS3Store erstellt einen S3Store.
func NewS3Store(client ObjectAPI, bucket, key string) *S3Store {
	return &S3Store{Client: client, Bucket: bucket, Key: key}
}

func (s *S3Store) Load(ctx context.Context) ([]models.Book, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get catalog %s: %w", s.Location(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.Location(), err)
	}
	return DecodeCatalog(data)
}

// Save ersetzt das Objekt vollständig.
func (s *S3Store) Save(ctx context.Context, books []models.Book) error {
	data, err := EncodeCatalog(books)
	if err != nil {
		return err
	}
	if err := UploadFile(ctx, s.Client, s.Bucket, s.Key, data); err != nil {
		return fmt.Errorf("put catalog %s: %w", s.Location(), err)
	}
	return nil
}

func (s *S3Store) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}
