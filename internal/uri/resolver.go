package uri

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/datafair/df-marketplace/internal/adapter"
	"github.com/datafair/df-marketplace/internal/logger"
)

// Config holds configuration for the content resolver
type Config struct {
	// IPFSGateways is the list of IPFS gateways to try
	IPFSGateways []string
}

// Resolved is the outcome of resolving a content pointer
type Resolved struct {
	// DataURL is a working gateway URL for the data payload
	DataURL string
	// MetadataURL is a working gateway URL for the metadata, when present
	MetadataURL string
	// Metadata is the fetched metadata document, when it could be retrieved
	// and parsed as JSON
	Metadata map[string]interface{}
}

// Resolver resolves asset content pointers to working gateway URLs
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// Resolve parses a content pointer and probes the configured gateways
	// for a URL that serves it. Returns an error when no gateway responds.
	Resolve(ctx context.Context, pointer string) (*Resolved, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	config     *Config
}

// NewResolver creates a new content resolver
func NewResolver(httpClient adapter.HTTPClient, config *Config) Resolver {
	return &resolver{
		httpClient: httpClient,
		config:     config,
	}
}

func (r *resolver) Resolve(ctx context.Context, pointer string) (*Resolved, error) {
	parsed, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}

	dataURL, err := r.findWorkingGateway(ctx, parsed.DataCID)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{DataURL: dataURL}

	if parsed.MetadataCID != "" {
		metadataURL, err := r.findWorkingGateway(ctx, parsed.MetadataCID)
		if err != nil {
			// The data payload is what buyers pay for; a missing metadata
			// document degrades the result instead of failing it.
			logger.WarnCtx(ctx, "metadata CID unresolvable", zap.String("cid", parsed.MetadataCID), zap.Error(err))
		} else {
			resolved.MetadataURL = metadataURL

			var metadata map[string]interface{}
			if err := r.httpClient.Get(ctx, metadataURL, &metadata); err != nil {
				logger.WarnCtx(ctx, "failed to fetch metadata document", zap.String("url", metadataURL), zap.Error(err))
			} else {
				resolved.Metadata = metadata
			}
		}
	}

	return resolved, nil
}

// findWorkingGateway probes all configured gateways in parallel with HEAD
// requests and returns the first one that serves the CID
func (r *resolver) findWorkingGateway(ctx context.Context, cid string) (string, error) {
	gateways := r.config.IPFSGateways
	if len(gateways) == 0 {
		return "", fmt.Errorf("no IPFS gateways configured")
	}

	logger.DebugCtx(ctx, "Probing IPFS gateways", zap.String("cid", cid), zap.Int("gateways", len(gateways)))

	type result struct {
		url string
		err error
	}

	resultCh := make(chan result, len(gateways))
	var wg sync.WaitGroup

	for _, gateway := range gateways {
		wg.Add(1)
		go func(gw string) {
			defer wg.Done()

			url := fmt.Sprintf("%s/ipfs/%s", gw, cid)
			resp, err := r.httpClient.Head(ctx, url)
			if err != nil {
				resultCh <- result{err: err}
				return
			}
			if err := resp.Body.Close(); err != nil {
				logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
			}

			if resp.StatusCode == http.StatusOK {
				resultCh <- result{url: url}
			} else {
				resultCh <- result{err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
			}
		}(gateway)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		if res.err == nil {
			logger.DebugCtx(ctx, "Found working IPFS gateway", zap.String("url", res.url))
			return res.url, nil
		}
	}

	return "", fmt.Errorf("no working IPFS gateway found for CID: %s", cid)
}
