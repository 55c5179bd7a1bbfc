package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// QueryParams selects the rows returned by a query.
type QueryParams struct {
	// Where is a WHERE clause without the keyword, e.g. "RunID = ?".
	Where string
	Args  []any

	// OrderBy is an ORDER BY clause without the keywords, e.g. "Step ASC".
	OrderBy string

	// Limit caps the number of rows. Zero means no limit.
	Limit int
}

func (p QueryParams) sql(tableName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SELECT * FROM %s", tableName)

	if p.Where != "" {
		b.WriteString(" WHERE " + p.Where)
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY " + p.OrderBy)
	}

	if p.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", p.Limit)
	}

	return b.String()
}

// DataReader reads back the tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table decode into.
	// A table must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// Query returns the selected rows of a table, each as a pointer to a new
	// value of the mapped struct.
	Query(ctx context.Context, tableName string, params QueryParams) ([]any, error)

	Close() error
}

type sqliteReader struct {
	*sql.DB

	typeMap map[string]reflect.Type
}

// NewReader opens a SQLite file for reading.
func NewReader(dbFilename string) (DataReader, error) {
	_, err := os.Stat(dbFilename)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open %s: %w", dbFilename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, fmt.Errorf("table %s is not mapped", tableName)
	}

	rows, err := r.DB.QueryContext(ctx, params.sql(tableName), params.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows, structType)
}

// scanRows decodes every row into a new structType value. Columns without a
// field of the same name are skipped.
func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []any{}
	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, column := range columns {
			field := entry.Elem().FieldByName(column)
			if field.IsValid() {
				targets[i] = field.Addr().Interface()
				continue
			}

			var skipped any
			targets[i] = &skipped
		}

		err := rows.Scan(targets...)
		if err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
