// Package qdrant wraps the official Qdrant Go client with the connection
// settings, per-request timeout, and error translation this service needs.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config configures the Qdrant gRPC client.
type Config struct {
	// Host is the Qdrant server hostname or IP address.
	Host string

	// Port is the Qdrant gRPC port (NOT the 6333 HTTP REST port).
	Port int

	// APIKey is the optional API key for secured deployments.
	APIKey string

	// UseTLS enables TLS for the gRPC connection.
	UseTLS bool

	// RequestTimeout bounds every individual store call.
	RequestTimeout time.Duration

	// DialTimeout bounds the startup health check.
	DialTimeout time.Duration
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6334
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
}

// Validate validates the client configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	return nil
}

// Client is a thin wrapper over the Qdrant SDK client. It is created once at
// startup and shared by all requests; the underlying gRPC connection is safe
// for concurrent use.
type Client struct {
	api    *qdrant.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient connects to Qdrant and verifies the connection with a health check.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid qdrant config: %w", err)
	}

	qcfg := &qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	}
	if !cfg.UseTLS {
		qcfg.GrpcOptions = append(qcfg.GrpcOptions,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}

	api, err := qdrant.NewClient(qcfg)
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	c := &Client{api: api, cfg: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	logger.Info("connecting to qdrant",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)
	if err := c.Ping(ctx); err != nil {
		_ = api.Close()
		return nil, fmt.Errorf("qdrant health check failed: %w", err)
	}
	logger.Info("qdrant connection established")

	return c, nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Ping performs a health check against the Qdrant server.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// CollectionExists reports whether a collection exists.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	exists, err := c.api.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("collection exists %s: %w", name, err)
	}
	return exists, nil
}

// ListCollections returns the names of all collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// CollectionInfo returns the live configuration and counters of a collection.
func (c *Client) CollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}
	return info, nil
}

// CreateCollection creates a collection.
func (c *Client) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("create collection %s: %w", req.GetCollectionName(), err)
	}
	return nil
}

// UpdateCollection updates collection parameters or metadata.
func (c *Client) UpdateCollection(ctx context.Context, req *qdrant.UpdateCollection) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.UpdateCollection(ctx, req); err != nil {
		return fmt.Errorf("update collection %s: %w", req.GetCollectionName(), err)
	}
	return nil
}

// DeleteCollection deletes a collection and all its points.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// CreateFieldIndex creates a payload index on a collection field.
func (c *Client) CreateFieldIndex(ctx context.Context, req *qdrant.CreateFieldIndexCollection) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.CreateFieldIndex(ctx, req); err != nil {
		return fmt.Errorf("create field index %s.%s: %w",
			req.GetCollectionName(), req.GetFieldName(), err)
	}
	return nil
}

// Count returns the number of points matching the request filter.
func (c *Client) Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.api.Count(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("count points %s: %w", req.GetCollectionName(), err)
	}
	return n, nil
}

// DeletePoints removes points matching the request selector.
func (c *Client) DeletePoints(ctx context.Context, req *qdrant.DeletePoints) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.Delete(ctx, req); err != nil {
		return fmt.Errorf("delete points %s: %w", req.GetCollectionName(), err)
	}
	return nil
}

// ScrollPage fetches one page of points and the offset of the next page.
// It calls the raw points service because the SDK's convenience Scroll drops
// the next-page offset needed for cursor pagination.
func (c *Client) ScrollPage(ctx context.Context, req *qdrant.ScrollPoints) (
	[]*qdrant.RetrievedPoint, *qdrant.PointId, error,
) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.GetPointsClient().Scroll(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("scroll %s: %w", req.GetCollectionName(), err)
	}
	return resp.GetResult(), resp.GetNextPageOffset(), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.RequestTimeout)
}
