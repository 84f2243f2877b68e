package openscad

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LibraryPathEnv lists extra library directories, like openscad itself does
const LibraryPathEnv = "OPENSCADPATH"

// use <file.scad> and include <file.scad>
var importRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Dependencies returns path followed by every file it uses or includes,
// transitively, each once and in first-seen order. All paths are absolute.
func Dependencies(path string) ([]string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	var (
		deps []string
		seen = make(map[string]bool)
		walk func(string) error
	)
	walk = func(file string) error {
		if seen[file] {
			return nil
		}
		seen[file] = true
		deps = append(deps, file)

		imports, err := Imports(file)
		if err != nil {
			return err
		}
		for _, imp := range imports {
			if err := walk(resolve(imp, filepath.Dir(file))); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(absPath); err != nil {
		return nil, err
	}
	return deps, nil
}

// Imports lists the targets of the use and include statements of file as
// written, skipping line comments
func Imports(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	var imports []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := importRegex.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	return imports, nil
}

// resolve looks an import up next to the importing file, then in the
// library directories. Unresolved imports stay relative to dir so that
// reading them reports the missing file.
func resolve(imp, dir string) string {
	if filepath.IsAbs(imp) {
		return filepath.Clean(imp)
	}
	local := filepath.Join(dir, imp)
	if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	for _, lib := range filepath.SplitList(os.Getenv(LibraryPathEnv)) {
		if lib == "" {
			continue
		}
		candidate := filepath.Join(lib, imp)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return local
}
