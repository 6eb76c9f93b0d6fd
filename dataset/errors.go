package dataset

import "fmt"

// DatasetError represents an error related with the contents of a dataset
type DatasetError string

/*
ErrEmptyDataset is the error returned when a calculation requires at least
one record and the dataset holds none.
*/
const ErrEmptyDataset = DatasetError("empty dataset")

/*
ErrInconsistentRecordShape is the error returned when the records of a
dataset do not agree on their number of attribute values.
*/
const ErrInconsistentRecordShape = DatasetError("records have inconsistent attribute counts")

func (de DatasetError) Error() string {
	return string(de)
}

/*
InconsistentRecordShapeError details which record broke the attribute count
established by the first record of a dataset. It unwraps to
ErrInconsistentRecordShape.
*/
type InconsistentRecordShapeError struct {
	Index    int
	Expected int
	Got      int
}

func (e *InconsistentRecordShapeError) Error() string {
	return fmt.Sprintf("%v: record %d has %d attributes, expected %d", ErrInconsistentRecordShape, e.Index, e.Got, e.Expected)
}

func (e *InconsistentRecordShapeError) Unwrap() error {
	return ErrInconsistentRecordShape
}
