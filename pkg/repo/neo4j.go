package repo

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrUnexpectedPing is returned by Ping when the check query does not return 1.
var ErrUnexpectedPing = errors.New("unexpected ping result")

// result is the minimal interface needed from a neo4j result.
type result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// runner is the minimal interface needed from a neo4j session.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (result, error)
	Close(ctx context.Context) error
}

// Client runs read statements over a single long-lived driver handle.
// A session is opened per call.
type Client struct {
	driver     neo4j.DriverWithContext
	newSession func(ctx context.Context) runner // for testing
}

// Compile-time interface check.
var _ Querier = (*Client)(nil)

// Open creates the driver for cfg. The driver connects lazily; callers that
// want to fail fast should call Verify.
func Open(cfg Config) (*Client, error) {
	auth := neo4j.NoAuth()
	if cfg.Authenticated() {
		auth = neo4j.BasicAuth(cfg.User, cfg.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI(), auth)
	if err != nil {
		return nil, err
	}
	return New(driver), nil
}

// New wraps an existing driver.
func New(driver neo4j.DriverWithContext) *Client {
	return &Client{driver: driver}
}

// neo4jSessionAdapter adapts neo4j.SessionWithContext to the runner interface.
type neo4jSessionAdapter struct {
	sess neo4j.SessionWithContext
}

func (a *neo4jSessionAdapter) Run(ctx context.Context, cypher string, params map[string]any) (result, error) {
	return a.sess.Run(ctx, cypher, params)
}

func (a *neo4jSessionAdapter) Close(ctx context.Context) error {
	return a.sess.Close(ctx)
}

func (c *Client) session(ctx context.Context) runner {
	if c.newSession != nil {
		return c.newSession(ctx)
	}
	return &neo4jSessionAdapter{sess: c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeRead,
	})}
}

// Execute runs cypher with params and returns every row. Driver errors are
// returned as-is.
func (c *Client) Execute(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	ctx, span := otel.Tracer("pkg/repo").Start(ctx, "repo.execute")
	defer span.End()
	span.SetAttributes(attribute.String("db.statement", cypher))

	rows, err := c.execute(ctx, cypher, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("db.rows", len(rows)))
	return rows, nil
}

func (c *Client) execute(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	sess := c.session(ctx)
	defer sess.Close(ctx)

	if params == nil {
		params = map[string]any{}
	}
	res, err := sess.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0)
	for res.Next(ctx) {
		rows = append(rows, rowFromRecord(res.Record()))
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecuteOne returns the first row. ok is false when the statement matched
// nothing; that is not an error.
func (c *Client) ExecuteOne(ctx context.Context, cypher string, params map[string]any) (Row, bool, error) {
	rows, err := c.Execute(ctx, cypher, params)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

// Ping runs a trivial query and checks that it returned 1.
func (c *Client) Ping(ctx context.Context) error {
	row, ok, err := c.ExecuteOne(ctx, "RETURN 1 AS ok", nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnexpectedPing
	}
	if v, _ := row["ok"].(int64); v != 1 {
		return ErrUnexpectedPing
	}
	return nil
}

// Verify checks that the store is reachable.
func (c *Client) Verify(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Close releases the driver. Safe on a nil client.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

func rowFromRecord(rec *neo4j.Record) Row {
	row := make(Row, len(rec.Keys))
	for i, key := range rec.Keys {
		if i < len(rec.Values) {
			row[key] = normalize(rec.Values[i])
		}
	}
	return row
}

// normalize flattens graph entities to their property bags.
func normalize(v any) any {
	switch t := v.(type) {
	case dbtype.Node:
		return t.Props
	case *dbtype.Node:
		return t.Props
	case dbtype.Relationship:
		return t.Props
	case *dbtype.Relationship:
		return t.Props
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
