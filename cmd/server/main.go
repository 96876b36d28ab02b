package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tenantrights-ai/backend/internal/ai"
	"tenantrights-ai/backend/internal/api"
	"tenantrights-ai/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("determine working directory: %v", err)
	}

	dataDir := filepath.Join(baseDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	geminiCfg := ai.GeminiConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
	if timeout := os.Getenv("GEMINI_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			geminiCfg.Timeout = d
		}
	}

	openAICfg := ai.OpenAIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   os.Getenv("OPENAI_MODEL"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}

	disableAI := strings.EqualFold(strings.TrimSpace(os.Getenv("DISABLE_AI")), "true")

	var archive *storage.Archive
	if endpoint := strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")); endpoint != "" {
		archiveCfg := storage.Config{
			Endpoint:  endpoint,
			Region:    os.Getenv("MINIO_REGION"),
			Bucket:    os.Getenv("MINIO_BUCKET"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    strings.EqualFold(strings.TrimSpace(os.Getenv("MINIO_USE_SSL")), "true"),
		}
		if archiveCfg.Bucket == "" {
			archiveCfg.Bucket = "lease-uploads"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		archive, err = storage.NewArchive(ctx, archiveCfg)
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("document archive unavailable, uploads will not be retained")
			archive = nil
		} else {
			logrus.WithField("bucket", archiveCfg.Bucket).Info("document archive enabled")
		}
	}

	allowedOrigins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		allowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	cfg := api.Config{
		DBPath:         filepath.Join(dataDir, "tenantrights.db"),
		AllowedOrigins: allowedOrigins,
		DisableAI:      disableAI,
		Gemini:         geminiCfg,
		OpenAI:         openAICfg,
		Archive:        archive,
	}

	if override := strings.TrimSpace(os.Getenv("TENANTRIGHTS_DB_PATH")); override != "" {
		cfg.DBPath = override
	}
	if maxUpload := strings.TrimSpace(os.Getenv("MAX_UPLOAD_MB")); maxUpload != "" {
		if v, err := strconv.Atoi(maxUpload); err == nil && v > 0 {
			cfg.MaxUploadBytes = int64(v) << 20
		}
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logrus.Infof("starting tenantrights backend on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
