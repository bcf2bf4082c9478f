package config

import "gopkg.in/yaml.v3"

// LoadFile unmarshals a project-root YAML config document into a File.
// Locating the file on disk is the caller's responsibility.
func LoadFile(data []byte) (File, error) {
	var f File
	if len(data) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}
