package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/sprout/dataset"
)

const (
	// MaxRecordInsertionsPerStatement is the maximum number
	// of records that are allowed to be added with a single
	// insert command with the AddRecords method of the adapter.
	// Trying to add more will result in making more insertion commands
	MaxRecordInsertionsPerStatement = 10

	recordTable = "records"
	labelColumn = "label"
	idColumn    = "id"
)

/*
Dialect represents the particularities of an SQL database engine.

Its Placeholder method returns the placeholder for the i-th (starting at 1)
argument of a statement.

Its PrimaryKey method returns the column definition for an auto-incremented
integer primary key with the given name.
*/
type Dialect interface {
	Placeholder(i int) string
	PrimaryKey(column string) string
}

/*
Adapter is the interface to a database on which records can be stored
and from which they can be listed.
*/
type Adapter interface {
	// CreateRecordTable ensures the records table exists with
	// columns for the given number of attributes.
	CreateRecordTable(ctx context.Context, attributeCount int) error
	// AddRecords inserts the given records and returns the number
	// of records actually inserted and an error if not all of them
	// could be.
	AddRecords(ctx context.Context, records []dataset.Record) (int, error)
	// IterateOnRecords calls the lambda for every stored record in
	// insertion order until it returns false or an error.
	IterateOnRecords(ctx context.Context, lambda func(dataset.Record) (bool, error)) error
	// Close frees the connections to the database
	Close() error
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes an open database and the dialect it speaks and returns an
Adapter for it.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

/*
Write takes a context, an Adapter and a dataset and stores all records of the
dataset on the adapter's database, creating the records table if necessary.
*/
func Write(ctx context.Context, a Adapter, s dataset.Dataset) error {
	attributeCount, err := s.AttributeCount()
	if err != nil {
		return fmt.Errorf("writing dataset to database: %w", err)
	}
	err = a.CreateRecordTable(ctx, attributeCount)
	if err != nil {
		return err
	}
	records := s.Records()
	n, err := a.AddRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("writing dataset to database: %d of %d records written: %w", n, len(records), err)
	}
	return nil
}

/*
Read takes a context, an Adapter and a DatasetGenerator-like function and
returns a dataset with all records stored on the adapter's database.
*/
func Read(ctx context.Context, a Adapter, dg func([]dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	var records []dataset.Record
	err := a.IterateOnRecords(ctx, func(r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading dataset from database: %w", err)
	}
	return dg(records), nil
}

func attributeColumn(i int) string {
	return fmt.Sprintf("a%d", i)
}

func (a *adapter) CreateRecordTable(ctx context.Context, attributeCount int) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(%s, "%s" TEXT NOT NULL`, recordTable, a.dialect.PrimaryKey(idColumn), labelColumn))
	for i := 0; i < attributeCount; i++ {
		createStmtBuf.WriteString(fmt.Sprintf(`, "%s" TEXT NOT NULL`, attributeColumn(i)))
	}
	createStmtBuf.WriteString(")")
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring records table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, records []dataset.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	attributeCount := len(records[0].Values)
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting insertion transaction: %v", err)
	}
	for chunkStart := 0; chunkStart < len(records); chunkStart += MaxRecordInsertionsPerStatement {
		chunkEnd := chunkStart + MaxRecordInsertionsPerStatement
		if chunkEnd > len(records) {
			chunkEnd = len(records)
		}
		chunk := records[chunkStart:chunkEnd]
		args := make([]interface{}, 0, len(chunk)*(attributeCount+1))
		for i, r := range chunk {
			if len(r.Values) != attributeCount {
				tx.Rollback()
				return 0, &dataset.InconsistentRecordShapeError{Index: chunkStart + i, Expected: attributeCount, Got: len(r.Values)}
			}
			args = append(args, r.Label)
			for _, v := range r.Values {
				args = append(args, v)
			}
		}
		_, err = tx.ExecContext(ctx, a.insertStatement(len(chunk), attributeCount), args...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting records %d to %d: %v", chunkStart, chunkEnd, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing insertion of %d records: %v", len(records), err)
	}
	return len(records), nil
}

func (a *adapter) insertStatement(recordCount, attributeCount int) string {
	columns := make([]string, 0, attributeCount+1)
	columns = append(columns, fmt.Sprintf(`"%s"`, labelColumn))
	for i := 0; i < attributeCount; i++ {
		columns = append(columns, fmt.Sprintf(`"%s"`, attributeColumn(i)))
	}
	var stmt bytes.Buffer
	stmt.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", recordTable, strings.Join(columns, ", ")))
	arg := 1
	for r := 0; r < recordCount; r++ {
		if r > 0 {
			stmt.WriteString(", ")
		}
		placeholders := make([]string, len(columns))
		for i := range placeholders {
			placeholders[i] = a.dialect.Placeholder(arg)
			arg++
		}
		stmt.WriteString(fmt.Sprintf("(%s)", strings.Join(placeholders, ", ")))
	}
	return stmt.String()
}

func (a *adapter) IterateOnRecords(ctx context.Context, lambda func(dataset.Record) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY "%s"`, recordTable, idColumn))
	if err != nil {
		return fmt.Errorf("querying records: %v", err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("listing record columns: %v", err)
	}
	positions := make(map[string]int, len(columns))
	for i, c := range columns {
		positions[c] = i
	}
	labelPosition, ok := positions[labelColumn]
	if !ok {
		return fmt.Errorf("records table lacks a %s column", labelColumn)
	}
	var attributePositions []int
	for i := 0; ; i++ {
		p, ok := positions[attributeColumn(i)]
		if !ok {
			break
		}
		attributePositions = append(attributePositions, p)
	}
	raw := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return fmt.Errorf("scanning record: %v", err)
		}
		values := make([]string, len(attributePositions))
		for i, p := range attributePositions {
			values[i] = raw[p].String
		}
		ok, err := lambda(dataset.NewRecord(raw[labelPosition].String, values...))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
