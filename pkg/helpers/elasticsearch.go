package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type ESOptions struct {
	Addresses  []string
	Username   string
	Password   string
	Timeout    time.Duration // dial and response-header timeout, default 5s
	MaxRetries int
}

// NewESClient builds a client that retries 502/503/504 and keeps a small
// idle pool per node.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	if len(opts.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch: no addresses")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     opts.Addresses,
		Username:      opts.Username,
		Password:      opts.Password,
		MaxRetries:    opts.MaxRetries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	})
}

// PingES reports whether the cluster answers within ctx.
func PingES(ctx context.Context, es *elasticsearch.Client) error {
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
