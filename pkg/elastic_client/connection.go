package elastic_client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/rs/zerolog/log"
)

// Client buffers documents into Elasticsearch through a bulk indexer.
// A nil *Client accepts and drops every document.
type Client struct {
	es          *elasticsearch.Client
	bulkIndexer esutil.BulkIndexer
}

// Connect returns nil when no address is configured
func Connect(elasticConfig config.ElasticsearchConfig) (*Client, error) {
	if elasticConfig.Address == "" {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil, nil
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{elasticConfig.Address},
		Username:  elasticConfig.Username,
		Password:  elasticConfig.Password,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	if _, err := es.Info(); err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}

	bulkIndexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create bulk indexer: %w", err)
	}

	log.Info().Msgf("Elasticsearch client setup for %s", elasticConfig.Address)

	return &Client{
		es:          es,
		bulkIndexer: bulkIndexer,
	}, nil
}

func (c *Client) IndexRequest(indexName string, document io.ReadSeeker) {
	if c == nil {
		return
	}

	err := c.bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:  indexName,
			Action: "index",
			Body:   document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
	if err != nil {
		log.Error().Err(err).Str("indexName", indexName).Msg("Failed to queue document")
	}
}

// Close flushes queued documents
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.bulkIndexer.Close(ctx)
}
