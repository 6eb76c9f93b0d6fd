/*
Package mongodataset stores records on a MongoDB collection and
loads them back as a dataset.Dataset.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pbanos/sprout/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	// DefaultCollectionName is the collection used when none is given
	DefaultCollectionName = "records"

	labelField  = "label"
	valuesField = "values"
	countField  = "count"
)

/*
Store is a MongoDB collection to which records can be added
and from which records can be sequentially read
*/
type Store struct {
	session    *mgo.Session
	collection string
}

type recordDocument struct {
	Label  string   `bson:"label"`
	Values []string `bson:"values"`
}

/*
Open takes a MongoDB database session and a collection name and returns a
Store that works on that collection of the default database for the
session, or an error if its indexes cannot be ensured.
*/
func Open(session *mgo.Session, collection string) (*Store, error) {
	if collection == "" {
		collection = DefaultCollectionName
	}
	s := &Store{session, collection}
	err := s.records().EnsureIndex(mgo.Index{
		Key:        []string{labelField},
		Background: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ensuring index on %s: %v", labelField, err)
	}
	return s, nil
}

/*
Dial takes a MongoDB URL and a collection name, connects to the server and
opens a Store on the given collection of the URL's database.
*/
func Dial(url, collection string) (*Store, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %v", err)
	}
	s, err := Open(session, collection)
	if err != nil {
		session.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the session of the store
func (s *Store) Close() {
	s.session.Close()
}

// Count returns the number of records on the collection
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.records().Count()
}

/*
LabelCounts returns the number of records on the collection for each
label, computed with an aggregation on the server.
*/
func (s *Store) LabelCounts(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter := s.records().Pipe([]bson.M{{"$group": bson.M{"_id": "$" + labelField, countField: bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		label, count, err := decodeLabelCount(doc)
		if err != nil {
			return nil, fmt.Errorf("counting labels: %v", err)
		}
		result[label] = count
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// decodeLabelCount reads a document produced by the label count aggregation
func decodeLabelCount(doc bson.M) (string, int, error) {
	label, ok := doc["_id"].(string)
	if !ok {
		return "", 0, fmt.Errorf("mongo aggregation query returned a %T instead of a string as label", doc["_id"])
	}
	switch count := doc[countField].(type) {
	case int:
		return label, count, nil
	case int64:
		return label, int(count), nil
	case float64:
		return label, int(count), nil
	}
	return "", 0, fmt.Errorf("mongo aggregation query returned a %T instead of an int as count of label %q", doc[countField], label)
}

// Write inserts the given records on the collection
func (s *Store) Write(ctx context.Context, records []dataset.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, newRecordDocument(r))
	}
	err := s.records().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

/*
Read returns a channel on which the records of the collection are sent in
insertion order, and a channel on which an error is sent if reading fails.
Both channels are closed once reading ends.
*/
func (s *Store) Read(ctx context.Context) (<-chan dataset.Record, <-chan error) {
	records := make(chan dataset.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		var doc recordDocument
		iter := s.records().Find(nil).Sort("_id").Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case records <- doc.record():
			}
			doc = recordDocument{}
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return records, errs
}

/*
Load takes a context and a generator and returns the dataset generated
with all the records on the collection.
*/
func (s *Store) Load(ctx context.Context, dg func([]dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	var records []dataset.Record
	if count, err := s.Count(ctx); err == nil {
		records = make([]dataset.Record, 0, count)
	}
	recordChan, errs := s.Read(ctx)
	for r := range recordChan {
		records = append(records, r)
	}
	if err := <-errs; err != nil {
		return nil, fmt.Errorf("loading records from MongoDB: %w", err)
	}
	return dg(records), nil
}

func (s *Store) records() *mgo.Collection {
	return s.session.DB("").C(s.collection)
}

func newRecordDocument(r dataset.Record) *recordDocument {
	values := r.Values
	if values == nil {
		values = []string{}
	}
	return &recordDocument{Label: r.Label, Values: values}
}

func (d *recordDocument) record() dataset.Record {
	return dataset.NewRecord(d.Label, d.Values...)
}
