package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobcard-backend/internal/config"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/metrics"
	"jobcard-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader is the part of the S3 client the backup needs
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Snapshot is the JSON document written on every backup
type Snapshot struct {
	CreatedAt time.Time              `json:"created_at"`
	Jobcards  []*models.Jobcard      `json:"jobcards"`
	Models    []*models.VehicleModel `json:"models"`
}

type BackupResult struct {
	Key      string `json:"key"`
	Jobcards int    `json:"jobcards"`
	Models   int    `json:"models"`
	Bytes    int    `json:"bytes"`
}

// BackupService uploads JSON snapshots of jobcards and models to S3-compatible storage
type BackupService struct {
	Jobcards JobcardStore
	Models   VehicleModelStore
	Uploader ObjectUploader
	Bucket   string
	Prefix   string
	log      *logger.Logger
}

func NewBackupService(jobcards JobcardStore, vehicleModels VehicleModelStore, uploader ObjectUploader, bucket, prefix string, log *logger.Logger) *BackupService {
	return &BackupService{
		Jobcards: jobcards,
		Models:   vehicleModels,
		Uploader: uploader,
		Bucket:   bucket,
		Prefix:   prefix,
		log:      log,
	}
}

// NewS3Client builds a client for S3 or an S3-compatible endpoint such as R2
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	b := cfg.Backup
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.AccessKey,
			b.SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure s3 client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if b.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Run takes a snapshot and uploads it under Prefix with a timestamped key
func (s *BackupService) Run(ctx context.Context) (*BackupResult, error) {
	jobcards, err := s.Jobcards.List(ctx, models.JobcardFilter{})
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot jobcards: %w", err)
	}
	vehicleModels, err := s.Models.List(ctx)
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot models: %w", err)
	}

	now := time.Now().UTC()
	data, err := json.Marshal(Snapshot{CreatedAt: now, Jobcards: jobcards, Models: vehicleModels})
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%sjobcards_%s.json", s.Prefix, now.Format("20060102_150405"))
	_, err = s.Uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("upload backup %s: %w", key, err)
	}

	metrics.BackupsTotal.WithLabelValues("success").Inc()
	s.log.Info("backup uploaded", "key", key, "jobcards", len(jobcards), "bytes", len(data))
	return &BackupResult{Key: key, Jobcards: len(jobcards), Models: len(vehicleModels), Bytes: len(data)}, nil
}

// StartScheduler runs a backup every interval until ctx is cancelled
func (s *BackupService) StartScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				if _, err := s.Run(runCtx); err != nil {
					s.log.Error("scheduled backup failed", "error", err)
				}
				cancel()
			}
		}
	}()
	s.log.Info("backup scheduler started", "interval", interval.String())
}
