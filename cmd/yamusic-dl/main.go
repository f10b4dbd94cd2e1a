package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/handiism/yamusic-downloader/internal/config"
	"github.com/handiism/yamusic-downloader/internal/download"
	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

// Colored output per event level.
var (
	errorLine   = color.New(color.FgRed)
	warningLine = color.New(color.FgYellow)
	successLine = color.New(color.FgGreen)
	infoLine    = color.New(color.FgCyan)
	dimLine     = color.New(color.Faint)
)

func main() {
	// Command line flags
	var (
		referenceFlag = flag.String("reference", "", "Playlist to download: URL, owner:kind, or 'liked'")
		outputFlag    = flag.String("output", "", "Output directory (overrides config)")
		formatFlag    = flag.String("format", "", "Preferred audio format: mp3, flac, or aac (overrides config)")
		configFlag    = flag.String("config", "", "Path to config file")
		playlistFlag  = flag.Bool("playlist", false, "Create playlist file")
		noTagsFlag    = flag.Bool("no-tags", false, "Skip ID3 tagging and cover art")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// CLI mode - require a playlist reference
	if *referenceFlag == "" && flag.NArg() == 0 {
		fmt.Println("Yandex Music Downloader - Download playlists from Yandex Music")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  yamusic-dl -reference <URL|owner:kind|liked> [options]")
		fmt.Println("  yamusic-dl <URL|owner:kind|liked> [options]")
		fmt.Println()
		fmt.Println("The OAuth token is read from the " + config.TokenEnv + " environment")
		fmt.Println("variable (a .env file in the working directory is also honored).")
		fmt.Println()
		fmt.Println("For interactive mode, use: yamusic-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *formatFlag != "" {
		settings.PreferredFormat = *formatFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *noTagsFlag {
		settings.ModifyTags = false
		settings.EmbedCoverArt = false
	}

	// Get the playlist reference
	reference := *referenceFlag
	if reference == "" && flag.NArg() > 0 {
		reference = flag.Arg(0)
	}

	token, err := config.LoadToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	catalog := yamusic.NewClient(token)
	manager := download.NewManager(settings, catalog, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		switch event.Level {
		case download.LevelError:
			errorLine.Println("✗ " + event.Message)
		case download.LevelWarning:
			warningLine.Println("! " + event.Message)
		case download.LevelSuccess:
			successLine.Println("✓ " + event.Message)
		case download.LevelInfo:
			infoLine.Println("› " + event.Message)
		default:
			dimLine.Println("  " + event.Message)
		}
	})

	fmt.Println("🎵 Yandex Music Downloader")
	fmt.Println(strings.Repeat("━", 40))
	fmt.Println()

	summary, err := manager.Run(ctx, reference)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	received := manager.GetProgress().ReceivedBytes
	fmt.Println()
	fmt.Println(strings.Repeat("━", 40))
	successLine.Printf("✨ Complete! Downloaded %d/%d track(s) (%.2f MB)\n",
		summary.Succeeded, summary.Total(), float64(received)/1024/1024)
	if summary.Skipped > 0 {
		dimLine.Printf("   %d skipped\n", summary.Skipped)
	}
	if summary.Failed > 0 {
		errorLine.Printf("   %d failed\n", summary.Failed)
		os.Exit(1)
	}
}
