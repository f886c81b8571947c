package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	cfg "postpilot/configs"
	"postpilot/internal/models"
	"postpilot/internal/transfer"
)

// MediaService stores uploaded media bytes and hands back an opaque
// reference plus the detected kind. The scheduler never touches raw bytes
// after this point.
type MediaService interface {
	Store(ctx context.Context, file *multipart.FileHeader) (*transfer.StoredMedia, error)
}

type r2MediaService struct {
	config cfg.Config
}

func NewMediaService(config cfg.Config) MediaService {
	return &r2MediaService{config: config}
}

var allowedTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

func (s *r2MediaService) Store(ctx context.Context, file *multipart.FileHeader) (*transfer.StoredMedia, error) {
	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, invalid("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return nil, invalid(fmt.Sprintf("file type %s is not allowed", fileType.Extension))
	}

	kind := models.MediaKindOther
	switch {
	case filetype.IsImage(fileBytes):
		kind = models.MediaKindImage
	case filetype.IsVideo(fileBytes):
		kind = models.MediaKindVideo
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if err := s.upload(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	return &transfer.StoredMedia{
		Ref:      fmt.Sprintf("%s/%s", s.config.R2.PublicBaseURL, key),
		Kind:     kind,
		MimeType: fileType.MIME.Value,
	}, nil
}

func (s *r2MediaService) upload(ctx context.Context, key string, file []byte, contentType string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
