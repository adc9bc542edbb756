package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sales-crm/internal/logger"
	"sales-crm/internal/metrics"
	"sales-crm/internal/models"
)

// TimeLayout is how timestamps are written to the store.
const TimeLayout = time.RFC3339Nano

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLStore implements Store over database/sql. It works with both sqlite and postgres.
type SQLStore struct {
	db      *sql.DB
	q       queryer
	dialect Dialect
	now     func() time.Time
	log     logger.Logger
}

func NewSQLStore(db *sql.DB, dialect Dialect, log logger.Logger) *SQLStore {
	return &SQLStore{
		db:      db,
		q:       db,
		dialect: dialect,
		now:     time.Now,
		log:     log,
	}
}

// SetClock replaces the source of default timestamps.
func (s *SQLStore) SetClock(now func() time.Time) { s.now = now }

func (s *SQLStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}

// WithTx runs fn against a transaction-bound store, committing only if fn succeeds.
func (s *SQLStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin", Err: err}
	}
	txStore := &SQLStore{q: tx, dialect: s.dialect, now: s.now, log: s.log}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

func (s *SQLStore) Select(ctx context.Context, coll models.Collection, pred Predicate) (rows []Row, err error) {
	defer s.observe("select", coll, time.Now(), &err)
	if !coll.Valid() {
		return nil, &StoreError{Op: "select", Collection: coll, Err: ErrUnknownCollection}
	}

	var args []any
	where, err := whereClause(coll, s.dialect, pred, &args)
	if err != nil {
		return nil, &StoreError{Op: "select", Collection: coll, Err: err}
	}
	query := fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(columns[coll], ", "), coll, where)

	result, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Op: "select", Collection: coll, Err: err}
	}
	defer result.Close()

	rows, err = scanRows(result)
	if err != nil {
		return nil, &StoreError{Op: "select", Collection: coll, Err: err}
	}
	return rows, nil
}

func (s *SQLStore) Insert(ctx context.Context, coll models.Collection, row Row) (stored Row, err error) {
	defer s.observe("insert", coll, time.Now(), &err)
	if !coll.Valid() {
		return nil, &StoreError{Op: "insert", Collection: coll, Err: ErrUnknownCollection}
	}

	record := make(Row, len(row)+3)
	for k, v := range row {
		if !hasColumn(coll, k) {
			return nil, &StoreError{Op: "insert", Collection: coll, Err: fmt.Errorf("%w %q", ErrUnknownColumn, k)}
		}
		record[k] = v
	}
	if record.ID() == "" {
		record["id"] = uuid.NewString()
	}
	now := s.now().UTC().Format(TimeLayout)
	for _, col := range timestampDefaults[coll] {
		if v, ok := record[col]; !ok || v == nil || v == "" {
			record[col] = now
		}
	}

	names := sortedKeys(record)
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = s.dialect.placeholder(i + 1)
		args[i] = record[name]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", coll, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return nil, &StoreError{Op: "insert", Collection: coll, Err: err}
	}

	// Read back so column defaults are visible to the caller.
	var selArgs []any
	where, _ := whereClause(coll, s.dialect, Eq("id", record.ID()), &selArgs)
	result, err := s.q.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(columns[coll], ", "), coll, where), selArgs...)
	if err != nil {
		return nil, &StoreError{Op: "insert", Collection: coll, Err: err}
	}
	defer result.Close()
	rows, err := scanRows(result)
	if err != nil {
		return nil, &StoreError{Op: "insert", Collection: coll, Err: err}
	}
	if len(rows) == 0 {
		return nil, &StoreError{Op: "insert", Collection: coll, Err: sql.ErrNoRows}
	}
	return rows[0], nil
}

func (s *SQLStore) Update(ctx context.Context, coll models.Collection, id string, row Row) (err error) {
	defer s.observe("update", coll, time.Now(), &err)
	if !coll.Valid() {
		return &StoreError{Op: "update", Collection: coll, Err: ErrUnknownCollection}
	}
	changes := make(Row, len(row))
	for k, v := range row {
		if k != "id" {
			changes[k] = v
		}
	}
	if len(changes) == 0 {
		return nil
	}

	names := sortedKeys(changes)
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		if !hasColumn(coll, name) {
			return &StoreError{Op: "update", Collection: coll, Err: fmt.Errorf("%w %q", ErrUnknownColumn, name)}
		}
		args = append(args, changes[name])
		sets[i] = name + " = " + s.dialect.placeholder(len(args))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", coll, strings.Join(sets, ", "), s.dialect.placeholder(len(args)))
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return &StoreError{Op: "update", Collection: coll, Err: err}
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, coll models.Collection, pred Predicate) (n int64, err error) {
	defer s.observe("delete", coll, time.Now(), &err)
	if !coll.Valid() {
		return 0, &StoreError{Op: "delete", Collection: coll, Err: ErrUnknownCollection}
	}
	if pred == nil {
		return 0, &StoreError{Op: "delete", Collection: coll, Err: ErrEmptyPredicate}
	}

	var args []any
	where, err := whereClause(coll, s.dialect, pred, &args)
	if err != nil {
		return 0, &StoreError{Op: "delete", Collection: coll, Err: err}
	}
	res, err := s.q.ExecContext(ctx, "DELETE FROM "+string(coll)+where, args...)
	if err != nil {
		return 0, &StoreError{Op: "delete", Collection: coll, Err: err}
	}
	n, _ = res.RowsAffected()
	return n, nil
}

func (s *SQLStore) observe(op string, coll models.Collection, start time.Time, err *error) {
	result := "ok"
	if *err != nil {
		result = "error"
		s.log.Warn("datastore %s on %s failed: %v", op, coll, *err)
	}
	metrics.StoreOperations.WithLabelValues(string(coll), op, result).Inc()
	metrics.StoreLatency.WithLabelValues(string(coll), op).Observe(time.Since(start).Seconds())
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Store = (*SQLStore)(nil)
var _ Transactor = (*SQLStore)(nil)
