package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
)

// Queryable contains the basic operations for querying the db.
type Queryable interface {
	Exec(ctx context.Context, sqlizer sqlizer) (pgconn.CommandTag, error)
	Get(ctx context.Context, dst interface{}, sqlizer sqlizer) error
	Select(ctx context.Context, dst interface{}, sqlizer sqlizer) error
}

type sqlizer interface {
	ToSql() (sql string, args []interface{}, err error)
}

// PSQL is the statement builder all repositories use.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable     = "events"
	EventTypesTable = "event_types"
)
