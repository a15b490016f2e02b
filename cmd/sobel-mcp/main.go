package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ironsheep/sobel-edge-mcp/internal/config"
	"github.com/ironsheep/sobel-edge-mcp/internal/logging"
	"github.com/ironsheep/sobel-edge-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sobel-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("sobel-mcp - MCP server for Sobel edge detection")
			fmt.Println()
			fmt.Println("Usage: sobel-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  SOBEL_MCP_CONFIG=path.yaml        YAML config file")
			fmt.Println("  SOBEL_MCP_LOG_LEVEL=debug         debug, info, warn or error")
			fmt.Println("  SOBEL_MCP_LOG_FILE=path           Also log JSON to a rotating file")
			fmt.Println("  SOBEL_MCP_KERNEL_SIZE=3           Default kernel size (3 or 5)")
			fmt.Println("  SOBEL_MCP_OUTPUT_FORMAT=magnitude Default output format")
			fmt.Println("  SOBEL_MCP_SCALE=1.0               Default intensity scale")
			fmt.Println("  SOBEL_MCP_EDGE_THRESHOLD=50       Default edge threshold for stats")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// A missing .env file is normal.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
		zap.Int("kernel_size", cfg.Defaults.KernelSize),
		zap.String("output_format", cfg.Defaults.OutputFormat))

	srv := server.New(server.WithLogger(logger), server.WithDefaults(cfg.Defaults))
	if err := srv.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
