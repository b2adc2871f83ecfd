package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/internal/models"
)

// R2Service mirrors publish log entries into a Cloudflare R2 bucket.
type R2Service struct {
	bucket string
	client *s3.Client
}

func NewR2Service(ctx context.Context, r2 cfg.R2) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	endpoint := r2.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Service{bucket: r2.BucketName, client: client}, nil
}

func PostLogKey(pl *models.PostLog) string {
	return fmt.Sprintf("post-logs/%s/%s.json", pl.PublishedAt.UTC().Format("2006/01/02"), pl.ID)
}

func (r *R2Service) ArchivePostLog(ctx context.Context, pl *models.PostLog) error {
	body, err := json.Marshal(pl)
	if err != nil {
		return fmt.Errorf("error marshalling post log: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(PostLogKey(pl)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
