package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/dvloznov/ledger-audit/internal/config"
	"github.com/dvloznov/ledger-audit/internal/gcs"
	"github.com/dvloznov/ledger-audit/internal/logger"
)

func main() {
	log := logger.New()

	var (
		bucketName string
		objectName string
		filePath   string
		configPath string
	)

	flag.StringVar(&bucketName, "bucket", "", "GCS bucket name (defaults to configured bucket)")
	flag.StringVar(&objectName, "object", "", "GCS object name (optional; defaults to file name)")
	flag.StringVar(&filePath, "file", "", "Path to local scan PDF (required)")
	flag.StringVar(&configPath, "config", "", "Path to TOML configuration (optional)")
	flag.Parse()

	if bucketName == "" && configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		bucketName = cfg.Project.Bucket
	}

	if bucketName == "" || filePath == "" {
		log.Fatal().Msg("Usage: upload-pdf -bucket BUCKET_NAME -file /path/to/scan.pdf [-object OBJECT_NAME]")
	}

	if objectName == "" {
		objectName = filepath.Base(filePath)
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Str("bucket", bucketName).
		Str("object", objectName).
		Str("file", filePath).
		Msg("Uploading scan to GCS")

	if err := gcs.NewService().UploadFile(ctx, bucketName, objectName, filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", filePath, bucketName, objectName)
}
