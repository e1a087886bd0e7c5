// Package repo provides a thin Cypher execution client over a Bolt driver.
package repo

import (
	"context"
	"fmt"
)

// Row is one result record keyed by the statement's return aliases.
// Node and relationship values are flattened to their property maps.
type Row map[string]any

// Querier executes parameterized read statements against the graph store.
type Querier interface {
	Execute(ctx context.Context, cypher string, params map[string]any) ([]Row, error)
	ExecuteOne(ctx context.Context, cypher string, params map[string]any) (Row, bool, error)
}

// Config describes how to reach the graph store.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
}

// URI returns the bolt:// connection target.
func (c Config) URI() string {
	return fmt.Sprintf("bolt://%s:%s", c.Host, c.Port)
}

// Authenticated reports whether basic auth should be used.
// Both user and password must be set; otherwise the connection is unauthenticated.
func (c Config) Authenticated() bool {
	return c.User != "" && c.Password != ""
}
