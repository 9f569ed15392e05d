package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jslang/jslin/internal"
	tt "github.com/jslang/jslin/internal/types"
	"github.com/jslang/jslin/scanner"
)

const maxShowRecentFiles = 25

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
}

// New builds an engine from the given configuration file. An empty path
// runs every rule at its default severity.
func New(configurationPath string) (*internal.Engine, error) {
	if configurationPath == "" {
		return internal.NewEngine(nil)
	}

	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(config.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if info.IsDir() {
		found, err := scanner.New(path).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		files := make([]string, 0, len(found))
		for _, f := range found {
			files = append(files, f.Path)
		}
		return processConcurrently(ctx, logger, engine, path, files, processor)
	}

	if !hasDesiredExtension(path) {
		return nil, nil
	}
	return processor(engine, path)
}

type fileResult struct {
	issues []tt.Issue
	err    error
}

func processConcurrently(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	files []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	// mutex for recent files
	var recentFilesMutex sync.Mutex
	recentFiles := make([]string, maxShowRecentFiles)

	// make space for recent files
	for i := 0; i < maxShowRecentFiles+1; i++ {
		fmt.Println()
	}
	fmt.Printf("\033[%dA", maxShowRecentFiles+1)

	results := make(chan fileResult, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// update recent files
	updateRecentFiles := func(filename string) {
		recentFilesMutex.Lock()
		defer recentFilesMutex.Unlock()

		// update the list
		for j := maxShowRecentFiles - 1; j > 0; j-- {
			recentFiles[j] = recentFiles[j-1]
		}
		recentFiles[0] = filename

		// move the cursor up
		fmt.Printf("\033[%dA", maxShowRecentFiles)

		// print the list
		for j := range recentFiles {
			if recentFiles[j] != "" {
				// \033[2k: clear the line
				// \r: move the cursor to the beginning of the line
				fmt.Printf("\033[2K\r%s\n", recentFiles[j])
			} else {
				fmt.Printf("\033[2K\r\n")
			}
		}
	}

	// for each file, run a goroutine
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				// show the start of file processing
				updateRecentFiles(filepath.Base(fp))

				fileIssues, err := processor(engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				results <- fileResult{issues: fileIssues, err: err}
				bar.Add(1)
			}(filePath)
		}
	}

	// collect all results; per-file errors were already logged, they only
	// drop that file's contribution
	var issues []tt.Issue
	for range files {
		res := <-results
		if res.err != nil {
			continue
		}
		issues = append(issues, res.issues...)
	}

	fmt.Println()
	return issues, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// CachedProcessor is ProcessFile backed by a result cache: unchanged files
// are served from the cache and skip the engine entirely.
func CachedProcessor(cache *internal.Cache) func(LintEngine, string) ([]tt.Issue, error) {
	return func(engine LintEngine, filePath string) ([]tt.Issue, error) {
		if issues, ok := cache.Get(filePath); ok {
			return issues, nil
		}
		issues, err := engine.Run(filePath)
		if err != nil {
			return nil, err
		}
		// best effort; a failed write only costs a recompute next run
		_ = cache.Set(filePath, issues)
		return issues, nil
	}
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasDesiredExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range scanner.DefaultExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
