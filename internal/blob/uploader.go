package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "supplier-management-api-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores supplier compliance documents in S3.
type Uploader struct {
	Client           *s3.Client
	Bucket           string
	Region           string
	CloudFrontDomain string
}

func NewUploader(cfg appconfig.S3Config) (*Uploader, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Uploader{
		Client:           s3.NewFromConfig(sdkConfig),
		Bucket:           cfg.Bucket,
		Region:           cfg.Region,
		CloudFrontDomain: cfg.CloudFrontDomain,
	}, nil
}

// ObjectKey builds the supplier-scoped key for an uploaded file:
// supplier-{id}/{uuid}-{originalFilename}.
func ObjectKey(supplierID, originalFilename string) string {
	return fmt.Sprintf("supplier-%s/%s-%s", supplierID, uuid.New().String(), originalFilename)
}

// UploadFile uploads a file and returns its retrievable URL.
func (u *Uploader) UploadFile(ctx context.Context, file io.Reader, contentType, objectKey string) (string, error) {
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	if u.CloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", u.CloudFrontDomain, objectKey), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, objectKey), nil
}

// DeleteFile removes the object behind a URL produced by UploadFile.
func (u *Uploader) DeleteFile(ctx context.Context, url string) error {
	key := url
	if idx := strings.Index(url, ".amazonaws.com/"); idx >= 0 {
		key = url[idx+len(".amazonaws.com/"):]
	} else if u.CloudFrontDomain != "" {
		key = strings.TrimPrefix(url, fmt.Sprintf("https://%s/", u.CloudFrontDomain))
	}

	_, err := u.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
