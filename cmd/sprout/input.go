package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/dataset/csv"
	"github.com/pbanos/sprout/dataset/mongodataset"
	"github.com/pbanos/sprout/dataset/sqlset"
	"github.com/pbanos/sprout/dataset/sqlset/pgadapter"
	"github.com/pbanos/sprout/dataset/sqlset/sqlite3adapter"
	"github.com/pbanos/sprout/feature"
	"github.com/pbanos/sprout/feature/yaml"
	"github.com/pbanos/sprout/sample"
	"github.com/pbanos/sprout/tree"
	treejson "github.com/pbanos/sprout/tree/json"
	"github.com/pbanos/sprout/tree/redisstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/redis.v5"
)

// inputConfig holds the flags of commands that read a dataset
type inputConfig struct {
	input              string
	columns            []int
	draw               int
	columnCount        int
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func (ic *inputConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(ic.input), "input", "i", "", "path to a headerless input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().IntSliceVar(&(ic.columns), "columns", nil, "CSV columns to build record attributes from, in order (column 0 holds the label)")
	cmd.Flags().IntVar(&(ic.draw), "draw", sample.DefaultAttributeCount, "number of CSV columns to draw at random when no columns are given")
	cmd.Flags().IntVar(&(ic.columnCount), "column-count", sample.DefaultHighColumn, "number of columns of the CSV input, label included (ignored when metadata is given)")
	cmd.Flags().BoolVar(&(ic.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive partitioning to decrease time at the cost of increasing memory use")
	cmd.Flags().BoolVar(&(ic.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive partitioning to decrease memory use at the cost of increasing time")
}

func (ic *inputConfig) Validate() error {
	if ic.cpuIntensiveSet && ic.memoryIntensiveSet {
		return fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	return nil
}

func (ic *inputConfig) datasetGenerator() csv.DatasetGenerator {
	if ic.memoryIntensiveSet {
		return dataset.NewMemoryIntensive
	}
	if ic.cpuIntensiveSet {
		return dataset.NewCPUIntensive
	}
	return dataset.New
}

func (ic *inputConfig) isCSV() bool {
	return !strings.HasSuffix(ic.input, ".db") && !isPostgreSQLURL(ic.input) && !strings.HasPrefix(ic.input, "mongodb://")
}

func isPostgreSQLURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

/*
selectColumns returns the CSV columns to read: the ones given with the
columns flag, or a random draw over the columns of the metadata (or
column-count columns if there is no metadata).
*/
func (rc *rootCmdConfig) selectColumns(ic *inputConfig, md *feature.Metadata, r *rand.Rand) ([]int, error) {
	if len(ic.columns) > 0 {
		return ic.columns, nil
	}
	high := ic.columnCount
	if md != nil {
		high = md.ColumnCount()
	}
	columns, err := sample.Attributes(ic.draw, sample.DefaultLowColumn, high, r)
	if err != nil {
		return nil, err
	}
	rc.logger.Info("drew columns", zap.Ints("columns", columns))
	return columns, nil
}

// metadata returns the metadata given with the metadata setting, if any
func (rc *rootCmdConfig) metadata() (*feature.Metadata, error) {
	if rc.Metadata == "" {
		return nil, nil
	}
	return yaml.ReadMetadataFromFile(rc.Metadata)
}

func (rc *rootCmdConfig) random() *rand.Rand {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc.logger.Debug("random source", zap.Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}

/*
readDataset reads the dataset in the input flag. CSV inputs are read with
the given columns; the rest hold records with their attributes already
selected.
*/
func (rc *rootCmdConfig) readDataset(ctx context.Context, ic *inputConfig, columns []int) (dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(ic.input, "mongodb://"):
		rc.logger.Info("reading dataset from MongoDB", zap.String("collection", rc.Mongo.Collection))
		store, err := mongodataset.Dial(ic.input, rc.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if ce := rc.logger.Check(zap.DebugLevel, "collection labels"); ce != nil {
			counts, err := store.LabelCounts(ctx)
			if err != nil {
				return nil, err
			}
			ce.Write(zap.Any("counts", counts), zap.Float64("entropy", dataset.CountsEntropy(dataset.SortedCounts(counts)...)))
		}
		return store.Load(ctx, ic.datasetGenerator())
	case isPostgreSQLURL(ic.input):
		rc.logger.Info("reading dataset from PostgreSQL")
		adapter, err := pgadapter.New(ic.input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqlset.Read(ctx, adapter, ic.datasetGenerator())
	case strings.HasSuffix(ic.input, ".db"):
		rc.logger.Info("reading dataset from SQLite3", zap.String("path", ic.input))
		adapter, err := sqlite3adapter.New(ic.input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqlset.Read(ctx, adapter, ic.datasetGenerator())
	}
	rc.logger.Info("reading dataset from CSV", zap.String("path", ic.input), zap.Ints("columns", columns))
	return csv.ReadDatasetFromFilePath(ic.input, columns, ic.datasetGenerator())
}

/*
writeDataset writes a dataset to the given destination: a MongoDB or
PostgreSQL connection URL, a SQLite3 database when the path ends in .db,
or a CSV file otherwise.
*/
func (rc *rootCmdConfig) writeDataset(ctx context.Context, path string, s dataset.Dataset) error {
	var adapter sqlset.Adapter
	var err error
	switch {
	case strings.HasPrefix(path, "mongodb://"):
		store, err := mongodataset.Dial(path, rc.Mongo.Collection)
		if err != nil {
			return err
		}
		defer store.Close()
		_, err = store.Write(ctx, s.Records())
		return err
	case isPostgreSQLURL(path):
		adapter, err = pgadapter.New(path)
	case strings.HasSuffix(path, ".db"):
		adapter, err = sqlite3adapter.New(path)
	default:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = csv.WriteCSVDataset(f, s)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	if err != nil {
		return err
	}
	defer adapter.Close()
	return sqlset.Write(ctx, adapter, s)
}

/*
destination returns a key identifying where writeDataset stores records for
the given path: the server and database of MongoDB and PostgreSQL URLs,
whose collection and table are fixed, or the absolute path of files.
*/
func destination(path string) (string, error) {
	if strings.HasPrefix(path, "mongodb://") || isPostgreSQLURL(path) {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("parsing destination URL: %v", err)
		}
		scheme := u.Scheme
		if scheme == "postgresql" {
			scheme = "postgres"
		}
		return fmt.Sprintf("%s://%s%s", scheme, strings.ToLower(u.Host), strings.TrimSuffix(u.Path, "/")), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// treeConfig holds the flags of commands that read a tree
type treeConfig struct {
	treeInput string
	treeID    string
}

func (tc *treeConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(tc.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.Flags().StringVar(&(tc.treeID), "tree-id", "", "ID of a tree stored on Redis")
}

func (tc *treeConfig) Validate() error {
	if (tc.treeInput == "") == (tc.treeID == "") {
		return fmt.Errorf("exactly one of the tree and tree-id flags must be set")
	}
	return nil
}

func (rc *rootCmdConfig) treeStore() *redisstore.Store {
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Redis.Addr,
		Password: rc.Redis.Password,
		DB:       rc.Redis.DB,
	})
	return redisstore.New(client, rc.Redis.Prefix)
}

func (rc *rootCmdConfig) loadTree(ctx context.Context, tc *treeConfig) (*tree.Tree, error) {
	if tc.treeID != "" {
		rc.logger.Info("loading tree from Redis", zap.String("id", tc.treeID))
		return rc.treeStore().Get(ctx, tc.treeID)
	}
	rc.logger.Info("loading tree", zap.String("path", tc.treeInput))
	f, err := os.Open(tc.treeInput)
	if err != nil {
		return nil, fmt.Errorf("opening tree at %s: %v", tc.treeInput, err)
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree at %s: %v", tc.treeInput, err)
	}
	return t, nil
}

func outputTree(outputPath string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return treejson.WriteJSONTree(t, f)
}
