/*
Package yaml provides methods to parse feature.Metadata
from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/sprout/feature"
	yaml "gopkg.in/yaml.v2"
)

type metadataDocument struct {
	Label         string            `yaml:"label"`
	PositiveLabel string            `yaml:"positiveLabel"`
	Features      []featureDocument `yaml:"features"`
}

type featureDocument struct {
	Name   string        `yaml:"name"`
	Values []interface{} `yaml:"values"`
}

/*
ReadMetadata takes a slice of bytes with a metadata document in YAML and
returns the metadata parsed from it or an error.
The YAML is expected to be an object with a label property naming the first
column, an optional positiveLabel property and a features property listing the
rest of the columns in order. Each feature is an object with a name and an
optional list of values.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	doc := &metadataDocument{}
	err := yaml.Unmarshal(md, doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(doc.Features) == 0 {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	result := &feature.Metadata{Label: doc.Label, PositiveLabel: doc.PositiveLabel}
	names := make(map[string]bool)
	for i, fd := range doc.Features {
		if fd.Name == "" {
			return nil, fmt.Errorf("feature %d has no name", i+1)
		}
		if names[fd.Name] {
			return nil, fmt.Errorf("duplicated feature %s", fd.Name)
		}
		names[fd.Name] = true
		var values []string
		for _, v := range fd.Values {
			values = append(values, fmt.Sprintf("%v", v))
		}
		result.Features = append(result.Features, feature.New(fd.Name, values))
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
