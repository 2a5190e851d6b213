package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"gjwuploader/internal/adapters/ffmpeg"
	"gjwuploader/internal/adapters/ganjing"
	"gjwuploader/internal/config"
	"gjwuploader/internal/core/domain"
	"gjwuploader/internal/service"
)

func main() {
	// Load .env if present; environment variables may be set manually.
	_ = godotenv.Load()

	video := flag.String("video", "", "path to the video file to upload")
	thumbnail := flag.String("thumbnail", "", "path to a thumbnail image (extracted from the video when omitted)")
	channel := flag.String("channel", "", "channel id that will own the content")
	title := flag.String("title", "", "video title")
	description := flag.String("description", "", "video description")
	category := flag.String("category", string(domain.CategoryEntertainment), "platform category code")
	visibility := flag.String("visibility", string(domain.VisibilityPublic), "public, private or unlisted")
	noWait := flag.Bool("no-wait", false, "return right after upload instead of waiting for transcoding")
	flag.Parse()

	if *video == "" || *channel == "" || *title == "" {
		fmt.Println("Usage: uploader-cli -video <path> -channel <id> -title <title> [flags]")
		fmt.Println("\nExample:")
		fmt.Println("  uploader-cli -video ./clip.mp4 -channel ch_abc123 -title \"My clip\" -category travel")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.AppEnv)

	client, err := ganjing.NewClient(ganjing.Options{
		AccessToken:   cfg.AccessToken,
		APIBaseURL:    cfg.APIBaseURL,
		UploadBaseURL: cfg.UploadBaseURL,
		Language:      cfg.Language,
		Logger:        &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize client")
	}

	orchestrator := service.NewOrchestrator(client, ffmpeg.NewExtractor(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("received interrupt signal, cancelling")
		cancel()
	}()

	job := service.UploadJob{
		VideoPath:     *video,
		ThumbnailPath: *thumbnail,
		AutoExtract:   true,
		Channel:       domain.ChannelID(*channel),
		Metadata: domain.VideoMetadata{
			Title:       *title,
			Description: *description,
			Category:    domain.Category(*category),
			Visibility:  domain.Visibility(*visibility),
			Language:    cfg.Language,
		},
		WaitForProcessing: !*noWait,
		PollInterval:      cfg.PollInterval,
		MaxWait:           cfg.MaxWait,
		Progress: func(phase domain.Phase, message string, percent int) {
			fmt.Printf("[%3d%%] %-24s %s\n", percent, phase, message)
		},
	}

	result, err := orchestrator.UploadComplete(ctx, job)
	if err != nil {
		logger.Error().Err(err).Msg("upload failed")
		os.Exit(1)
	}

	fmt.Println("\n=== Upload Summary ===")
	fmt.Printf("Content ID:   %s\n", result.ContentID)
	fmt.Printf("Video ID:     %s\n", result.VideoID)
	fmt.Printf("Image ID:     %s\n", result.ImageID)
	fmt.Printf("Watch URL:    %s\n", result.WebURL)
	fmt.Printf("Status:       %s (%d%%)\n", result.Status.Status, result.Status.Progress)
	if result.StreamURL != "" {
		fmt.Printf("Stream URL:   %s\n", result.StreamURL)
	}
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format(time.RFC3339))
}

func newLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}
