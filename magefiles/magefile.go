//go:build mage

// Package main contains Mage build targets for officemd developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the converters default to.
var projectDirs = []string{
	"word inmaa data",
	"markdown_split_pages",
	".officemd",
}

// Init creates the default input, output and ledger directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "officemd"
	cmdPkg  = "./cmd/officemd"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Docx converts every Word document in the default input directory.
func Docx() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "docx")
}

// Pptx converts the presentations named in $PPTX (a file or directory;
// defaults to the current directory).
func Pptx() error {
	mg.Deps(Build)
	target := os.Getenv("PPTX")
	if target == "" {
		target = "."
	}
	return sh.RunV(binPath(), "pptx", target)
}

// Stats prints Go production and test line counts per package directory
// plus totals, and the word count of the Markdown documentation.
func Stats() error {
	prod, test := map[string]int{}, map[string]int{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test[filepath.Dir(path)] += n
		} else {
			prod[filepath.Dir(path)] += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := slices.Sorted(maps.Keys(prod))
	var prodTotal, testTotal int
	for _, dir := range dirs {
		fmt.Printf("%-36s %6d prod %6d test\n", dir, prod[dir], test[dir])
		prodTotal += prod[dir]
	}
	for _, n := range test {
		testTotal += n
	}

	words := 0
	docs, _ := filepath.Glob("*.md")
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			continue
		}
		words += len(strings.Fields(string(data)))
	}

	fmt.Printf("\nLines of code (Go, production): %d\n", prodTotal)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testTotal)
	fmt.Printf("Words (documentation):          %d\n", words)
	return nil
}

// countLines counts non-blank lines in the file at path.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
