package sprout

import (
	"fmt"

	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/tree"
	"go.uber.org/zap"
)

// Option configures how a tree is grown
type Option func(*options)

type options struct {
	logger         *zap.Logger
	attributeNames []string
}

// WithLogger makes growth report its decisions on the given logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAttributeNames names the attributes of the grown tree
func WithAttributeNames(names []string) Option {
	return func(o *options) {
		o.attributeNames = names
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

/*
development is the outcome of evaluating a node: either a leaf with its
probability and weight, or a stage described by the selected partition.
*/
type development struct {
	probability float64
	weight      int
	partition   *Partition
}

func (d *development) isLeaf() bool {
	return d.partition == nil
}

/*
develop takes the dataset reaching a node, the attribute count of its records
and the depth of the node, and decides whether the node is a leaf or a stage:
a node becomes a leaf when the clearance reaches the purity threshold, when
the max depth is reached, or when the best gain ratio is exactly 0.
*/
func develop(s dataset.Dataset, attributeCount, depth int, p Policy, logger *zap.Logger) (*development, error) {
	clearance, majority, err := Clearance(s, p.PositiveLabel)
	if err != nil {
		return nil, err
	}
	d := &development{
		probability: p.LeafProbability(clearance, majority),
		weight:      s.Count(),
	}
	if clearance >= p.PurityThreshold {
		logger.Debug("leaf by clearance", zap.Int("depth", depth), zap.Int("records", d.weight), zap.Float64("clearance", clearance))
		return d, nil
	}
	if p.MaxDepth > 0 && depth >= p.MaxDepth {
		logger.Debug("leaf by depth", zap.Int("depth", depth), zap.Int("records", d.weight))
		return d, nil
	}
	part, err := SelectAttribute(s, attributeCount)
	if err != nil {
		return nil, err
	}
	if part == nil || part.GainRatio == 0.0 {
		logger.Debug("leaf by gain ratio", zap.Int("depth", depth), zap.Int("records", d.weight))
		return d, nil
	}
	logger.Debug("stage", zap.Int("depth", depth), zap.Int("records", d.weight), zap.Int("attribute", part.Attribute), zap.Float64("gainRatio", part.GainRatio), zap.Int("branches", len(part.Groups)))
	d.partition = part
	return d, nil
}

/*
Grow takes a dataset of labelled records, a policy and options and returns
the decision tree induced from the dataset. It fails with
dataset.ErrEmptyDataset if the dataset is empty, and with a
*dataset.InconsistentRecordShapeError if its records do not agree on their
number of attributes.
*/
func Grow(s dataset.Dataset, p Policy, opts ...Option) (*tree.Tree, error) {
	o := newOptions(opts)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	attributeCount, err := s.AttributeCount()
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	o.logger.Info("growing tree", zap.Int("records", s.Count()), zap.Int("attributes", attributeCount))
	root, err := grow(s, attributeCount, 0, p, o.logger)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	return tree.New(root, p.PositiveLabel, o.attributeNames), nil
}

func grow(s dataset.Dataset, attributeCount, depth int, p Policy, logger *zap.Logger) (*tree.Node, error) {
	if s.Count() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	d, err := develop(s, attributeCount, depth, p, logger)
	if err != nil {
		return nil, err
	}
	if d.isLeaf() {
		return tree.NewLeaf(d.probability, d.weight), nil
	}
	children := make(map[string]*tree.Node, len(d.partition.Groups))
	for _, v := range d.partition.Values() {
		c, err := grow(d.partition.Groups[v], attributeCount, depth+1, p, logger)
		if err != nil {
			return nil, err
		}
		children[v] = c
	}
	return tree.NewStage(d.partition.Attribute, children), nil
}
