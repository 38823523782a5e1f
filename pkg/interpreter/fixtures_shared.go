package interpreter

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// fixtureCase is one YAML scenario under testdata/: a program source plus
// the output it must produce.
type fixtureCase struct {
	Description string   `yaml:"description"`
	Decay       *float64 `yaml:"decay"`
	Source      string   `yaml:"source"`
	Expect      struct {
		Result   *string  `yaml:"result"`
		Stdout   []string `yaml:"stdout"`
		Warnings []string `yaml:"warnings"`
		Error    string   `yaml:"error"`
	} `yaml:"expect"`
}

func readFixture(t testingT, path string) fixtureCase {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture %s: %v", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var fixture fixtureCase
	if err := decoder.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			t.Fatalf("fixture %s is empty", path)
		}
		t.Fatalf("parse fixture %s: %v", path, err)
	}
	if strings.TrimSpace(fixture.Source) == "" {
		t.Fatalf("fixture %s has no source", path)
	}
	return fixture
}

// listFixtures returns the .yml files directly under dir, sorted by name.
func listFixtures(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
