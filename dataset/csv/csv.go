/*
Package csv reads and writes datasets as CSV streams without header.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sprout/dataset"
)

/*
Writer is an interface for a destination to which
records can be written.
*/
type Writer interface {
	// Write will attempt to write the given records
	// and will return the actually written number of
	// records and an error (if not all records could
	// be written)
	Write([]dataset.Record) (int, error)
	// Count returns the total number of records written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
DatasetGenerator is a function that takes a slice of records
and generates a dataset with them.
*/
type DatasetGenerator func([]dataset.Record) dataset.Dataset

type csvWriter struct {
	count int
	w     *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream, a slice of column indexes
and a DatasetGenerator and returns a dataset.Dataset built with the
DatasetGenerator and the records parsed from the reader or an error.

The CSV content has no header. The first field of every row is the label
and the attribute values of each record are the fields at the given
columns, in the given order.
*/
func ReadDataset(reader io.Reader, columns []int, dg DatasetGenerator) (dataset.Dataset, error) {
	records := []dataset.Record{}
	err := ReadDatasetByRecord(reader, columns, func(_ int, r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dg(records), nil
}

/*
ReadDatasetByRecord takes an io.Reader for a CSV stream, a slice of column
indexes and a lambda function on an integer and a dataset.Record that returns
a boolean value. It parses the records from the reader and for each it calls
the lambda function with the record and its index as parameters. If the lambda
function returns true, it will continue processing the next record, otherwise
it will stop. An error is returned if something goes wrong when reading the
stream or a row lacks one of the requested columns.
*/
func ReadDatasetByRecord(reader io.Reader, columns []int, lambda func(int, dataset.Record) (bool, error)) error {
	for _, c := range columns {
		if c < 0 {
			return fmt.Errorf("invalid negative column %d", c)
		}
	}
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	for l := 1; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		record, err := parseRecordFromCSVRow(row, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-1, record)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, a slice of column indexes and
a DatasetGenerator, opens the file to which the filepath points to and uses
ReadDataset to return a dataset.Dataset or an error read from it. If the
filepath is "" os.Stdin is used instead. It will return an error if the given
filepath cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, columns []int, dg DatasetGenerator) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, columns, dg)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
NewWriter takes an io.Writer and returns a Writer that will write any
records on it, one row per record with the label as first field followed
by the attribute values.
*/
func NewWriter(writer io.Writer) Writer {
	return &csvWriter{w: csv.NewWriter(writer)}
}

/*
WriteCSVDataset takes a writer and a dataset.Dataset and dumps to the writer
the dataset in CSV format. It returns an error if something went wrong when
writing to the writer. Reading the output back with columns 1 to n, n being
the attribute count, yields the same records.
*/
func WriteCSVDataset(writer io.Writer, s dataset.Dataset) error {
	cw := NewWriter(writer)
	_, err := cw.Write(s.Records())
	if err != nil {
		return err
	}
	return cw.Flush()
}

/*
Columns returns the column indexes 1 to n, which select every attribute of
a CSV stream written by a Writer for records with n attributes.
*/
func Columns(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i + 1
	}
	return result
}

func parseRecordFromCSVRow(row []string, columns []int) (dataset.Record, error) {
	if len(row) == 0 {
		return dataset.Record{}, fmt.Errorf("empty row")
	}
	values := make([]string, len(columns))
	for i, c := range columns {
		if c >= len(row) {
			return dataset.Record{}, fmt.Errorf("column %d requested from row with %d fields", c, len(row))
		}
		values[i] = row[c]
	}
	return dataset.NewRecord(row[0], values...), nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(records []dataset.Record) (int, error) {
	for n, r := range records {
		err := cw.writeRecord(r)
		if err != nil {
			return n, err
		}
	}
	return len(records), nil
}

func (cw *csvWriter) writeRecord(r dataset.Record) error {
	row := make([]string, 0, len(r.Values)+1)
	row = append(row, r.Label)
	row = append(row, r.Values...)
	err := cw.w.Write(row)
	if err != nil {
		return fmt.Errorf("writing CSV row for record %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
