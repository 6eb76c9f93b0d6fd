package tree

import "fmt"

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrUnseenCategory is the error returned by the Predict method of a tree
when a record presents a value for an attribute that was never observed
while growing the stage that inspects it.
*/
const ErrUnseenCategory = PredictionError("unseen category")

/*
ErrAttributeIndexOutOfRange is the error returned by the Predict method of
a tree when a record has fewer values than a stage expects.
*/
const ErrAttributeIndexOutOfRange = PredictionError("attribute index out of range")

/*
ErrNilTree is the error returned when trying to predict with a tree that
has no root.
*/
const ErrNilTree = PredictionError("nil tree cannot predict records")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
UnseenCategoryError details the attribute and value for which no subtree
was found. It unwraps to ErrUnseenCategory.
*/
type UnseenCategoryError struct {
	Attribute int
	Value     string
}

func (e *UnseenCategoryError) Error() string {
	return fmt.Sprintf("%v: value %q for attribute %d", ErrUnseenCategory, e.Value, e.Attribute)
}

func (e *UnseenCategoryError) Unwrap() error {
	return ErrUnseenCategory
}

/*
AttributeIndexOutOfRangeError details the attribute a stage expected and
the number of values the record had. It unwraps to
ErrAttributeIndexOutOfRange.
*/
type AttributeIndexOutOfRangeError struct {
	Attribute int
	Length    int
}

func (e *AttributeIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%v: attribute %d requested from record with %d values", ErrAttributeIndexOutOfRange, e.Attribute, e.Length)
}

func (e *AttributeIndexOutOfRangeError) Unwrap() error {
	return ErrAttributeIndexOutOfRange
}
