package suite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/tinylisp/repl-test-harness/framework/opt"
)

// DefaultSuffix is the file name suffix (before the extension) that marks a suite file.
const DefaultSuffix = "_tests"

// Extensions lists the suite file extensions that are recognized, in order of preference.
var Extensions = []string{".yaml", ".yml", ".json"} //nolint:gochecknoglobals

type suiteFile struct {
	Testee   string         `json:"testee" yaml:"testee"`
	Tests    []testCaseFile `json:"tests" yaml:"tests"`
	TestList []testCaseFile `json:"test_list" yaml:"test_list"`
}

type testCaseFile struct {
	Name    string       `json:"name" yaml:"name"`
	Send    scalarString `json:"send" yaml:"send"`
	Expect  scalarString `json:"expect" yaml:"expect"`
	Timeout string       `json:"timeout" yaml:"timeout"`
}

// Discover returns the identifiers of all suites in dir, that is the base names of files whose
// name without its extension ends in suffix. The result is sorted.
func Discover(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list suites in %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(Extensions, ext) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ext)
		if strings.HasSuffix(stem, suffix) && !slices.Contains(names, stem) {
			names = append(names, stem)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Select returns requested if it is one of the discovered suites, or defaultName otherwise. An
// unknown request is deliberately not an error.
func Select(requested string, discovered []string, defaultName string) string {
	if requested != "" && slices.Contains(discovered, requested) {
		return requested
	}
	return defaultName
}

// Load reads the suite called name from dir.
func Load(dir, name string) (Suite, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Suite{}, fmt.Errorf("failed to read %q: %w", path, err)
		}
		s, err := parseSuite(name, data)
		if err != nil {
			return Suite{}, fmt.Errorf("error reading %q: %w", path, err)
		}
		s.FilePath = path
		return s, nil
	}
	return Suite{}, fmt.Errorf("suite %q not found in %s", name, dir)
}

func parseSuite(name string, data []byte) (Suite, error) {
	var f suiteFile
	if err := decodeSuiteFile(data, &f); err != nil {
		return Suite{}, err
	}
	if f.Testee == "" {
		return Suite{}, errors.New(`"testee" is required`)
	}
	tests := f.Tests
	if len(tests) == 0 {
		tests = f.TestList
	}
	s := Suite{Name: name, Testee: f.Testee, Cases: make([]TestCase, 0, len(tests))}
	for i, tf := range tests {
		tc := TestCase{Name: tf.Name, Send: string(tf.Send), Expect: string(tf.Expect)}
		if tc.Name == "" {
			tc.Name = fmt.Sprintf("test %d", i+1)
		}
		if tf.Timeout != "" {
			d, err := time.ParseDuration(tf.Timeout)
			if err != nil || d <= 0 {
				return Suite{}, fmt.Errorf("test %q: invalid timeout %q", tc.Name, tf.Timeout)
			}
			tc.Timeout = opt.Some(d)
		}
		s.Cases = append(s.Cases, tc)
	}
	return s, nil
}
