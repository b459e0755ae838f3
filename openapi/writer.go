package openapi

import (
	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/system"
	"github.com/oasref/openapi/yml"
)

// WriteToJSON serializes n as indented JSON.
func WriteToJSON(n Node) ([]byte, error) {
	return json.Marshal(Marshal(n))
}

// WriteToYAML serializes n as YAML.
func WriteToYAML(n Node) ([]byte, error) {
	return yml.Marshal(Marshal(n))
}

// WriteToJSONFile writes n as JSON to fileName.
func WriteToJSONFile(n Node, fileName string) error {
	return writeFile(n, fileName, WriteToJSON)
}

// WriteToYAMLFile writes n as YAML to fileName.
func WriteToYAMLFile(n Node, fileName string) error {
	return writeFile(n, fileName, WriteToYAML)
}

func writeFile(n Node, fileName string, write func(Node) ([]byte, error)) error {
	data, err := write(n)
	if err != nil {
		return err
	}

	fs := &system.FileSystem{}
	if err := fs.WriteFile(fileName, data, 0o644); err != nil {
		return errors.ErrIO.Wrapf("Failed to write file: '%s': %s", fileName, err)
	}

	return nil
}
