package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/pipeline"
	"github.com/baditaflorin/go_testcase_redundancy/pkg/analyzer"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultMaxRequestSize = 50 * 1024 * 1024 // 50MB; suite exports can be large
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// Analyzer shared by requests using the default configuration.
	defaultAnalyzer *analyzer.Analyzer

	// Logger instance
	logger l.Logger
)

// TestCaseRequest is one test-case record in an analysis request.
type TestCaseRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Priority       string `json:"priority"`
	CoreDependency string `json:"core_dependency,omitempty"`
	Labels         string `json:"labels,omitempty"`
	TestingLevel   string `json:"testing_level,omitempty"`
}

// AnalyzeRequest is a redundancy analysis request.
type AnalyzeRequest struct {
	Cases []TestCaseRequest `json:"cases"`

	// Optional overrides; zero values fall back to the defaults.
	NumClusters       int     `json:"num_clusters,omitempty"`
	Seed              int64   `json:"seed,omitempty"`
	PrimaryThreshold  float64 `json:"similarity_threshold_primary,omitempty"`
	PriorityThreshold float64 `json:"similarity_threshold_priority,omitempty"`
}

// CandidateResponse is one flagged pair in an analysis response.
type CandidateResponse struct {
	ClusterID    int     `json:"cluster_id"`
	Case1ID      string  `json:"case_1_id"`
	Case2ID      string  `json:"case_2_id"`
	Case1Title   string  `json:"case_1_title"`
	Case2Title   string  `json:"case_2_title"`
	Score        float64 `json:"similarity_score"`
	Reason       string  `json:"reason"`
	ReviewStatus string  `json:"review_status"`
	Resolution   string  `json:"resolution"`
	ToRemove     string  `json:"to_remove"`
}

// AnalyzeResponse is a redundancy analysis response.
type AnalyzeResponse struct {
	Records    int                 `json:"records"`
	Candidates []CandidateResponse `json:"candidates"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting redundancy analysis HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	// Initialize the shared default analyzer
	initAnalyzer(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initAnalyzer initializes the shared default analyzer
func initAnalyzer(warmUp bool) {
	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithOptimizedNormalizer(),
	}
	if warmUp {
		opts = append(opts, analyzer.WithWarmUp(true))
	}

	var err error
	defaultAnalyzer, err = analyzer.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize analyzer", "error", err)
		os.Exit(1)
	}

	logger.Info("Analyzer initialized successfully", "warm_up", warmUp)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "RedundancyServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/analyze":
		handleAnalyze(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleAnalyze handles redundancy analysis requests
func handleAnalyze(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	// Parse request
	var req AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	if len(req.Cases) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one test case is required")
		return
	}

	a, err := analyzerFor(req)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid configuration: "+err.Error())
		return
	}

	cases := make([]domain.TestCase, len(req.Cases))
	for i, tc := range req.Cases {
		cases[i] = domain.TestCase{
			ID:             tc.ID,
			Title:          tc.Title,
			Priority:       tc.Priority,
			CoreDependency: tc.CoreDependency,
			Labels:         tc.Labels,
			TestingLevel:   tc.TestingLevel,
		}
		if cases[i].TestingLevel == "" {
			cases[i].TestingLevel = "N/A"
		}
	}

	// Create context with timeout
	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	candidates, err := a.Analyze(c, cases)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyCorpus) || errors.Is(err, domain.ErrInvalidConfig) {
			status = fasthttp.StatusBadRequest
		}
		ctx.SetStatusCode(status)
		writeJSONError(ctx, "Analysis failed: "+err.Error())
		return
	}

	response := AnalyzeResponse{
		Records:    len(cases),
		Candidates: make([]CandidateResponse, len(candidates)),
	}
	for i, cand := range candidates {
		response.Candidates[i] = CandidateResponse{
			ClusterID:    cand.ClusterID,
			Case1ID:      cand.Case1.ID,
			Case2ID:      cand.Case2.ID,
			Case1Title:   cand.Case1.Title,
			Case2Title:   cand.Case2.Title,
			Score:        cand.Score,
			Reason:       cand.Reason,
			ReviewStatus: cand.ReviewStatus,
			Resolution:   cand.Resolution,
			ToRemove:     cand.ToRemove,
		}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// analyzerFor returns the shared analyzer, or a request-specific one
// when the request overrides any configuration value.
func analyzerFor(req AnalyzeRequest) (*analyzer.Analyzer, error) {
	if req.NumClusters == 0 && req.Seed == 0 && req.PrimaryThreshold == 0 && req.PriorityThreshold == 0 {
		return defaultAnalyzer, nil
	}

	cfg := pipeline.DefaultConfig()
	if req.NumClusters != 0 {
		cfg.Cluster.NumClusters = req.NumClusters
	}
	if req.Seed != 0 {
		cfg.Cluster.Seed = req.Seed
	}
	if req.PrimaryThreshold != 0 {
		cfg.Classifier.PrimaryThreshold = req.PrimaryThreshold
	}
	if req.PriorityThreshold != 0 {
		cfg.Classifier.PriorityThreshold = req.PriorityThreshold
	}

	return analyzer.New(
		analyzer.WithLogger(logger),
		analyzer.WithOptimizedNormalizer(),
		analyzer.WithPipelineConfig(cfg),
	)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
