package product

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandb/harness/version"
)

const versionQuery = "SELECT meridian_version()"

// readyTimeout bounds how long WaitReady polls before giving up.
const readyTimeout = 2 * time.Minute

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Client is a connection to a running product instance. All queries block
// the caller for their duration.
type Client struct {
	pool  querier
	close func()
}

// Connect opens a connection pool to the product at the given DSN. The
// product speaks the Postgres wire protocol.
func Connect(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Client{pool: pool, close: pool.Close}, nil
}

func (c *Client) Close() {
	if c.close != nil {
		c.close()
	}
}

// QueryValue runs a query and returns the first column of its first row.
func (c *Client) QueryValue(ctx context.Context, query string, args ...any) (string, error) {
	var value string
	if err := c.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to execute query %q: %w", query, err)
	}

	return value, nil
}

// Exec runs a statement, discarding any result.
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := c.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute %q: %w", query, err)
	}

	return nil
}

// Version queries the running product for its version.
func (c *Client) Version(ctx context.Context) (version.Version, error) {
	raw, err := c.QueryValue(ctx, versionQuery)
	if err != nil {
		return version.Version{}, err
	}

	v, err := version.Parse(raw)
	if err != nil {
		return version.Version{}, fmt.Errorf("failed to parse product version: %w", err)
	}

	return v, nil
}

// WaitReady polls the product with exponential backoff until it answers the
// version query, typically while the daemon is still booting. A product that
// answers with an unparseable version fails immediately.
func (c *Client) WaitReady(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = readyTimeout

	if err := backoff.Retry(func() error {
		raw, err := c.QueryValue(ctx, versionQuery)
		if err != nil {
			return err
		}

		if _, err := version.Parse(raw); err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("failed to wait for product readiness: %w", err)
	}

	return nil
}
