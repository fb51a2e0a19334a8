package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/artpar/paramgate/core/registry"
	"github.com/artpar/paramgate/core/schema"
)

var (
	validateDir   string
	validateWatch bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint schema files without starting the server",
	Long: `Parses and compiles every schema in a directory, reporting the
first definition error found in each. With --watch, the directory is
re-linted whenever a schema file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validateWatch {
			return lintDir(validateDir)
		}
		return watchDir(validateDir)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "schemas", "schema directory")
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "re-lint on file changes")
	rootCmd.AddCommand(validateCmd)
}

func lintDir(dir string) error {
	schemas, err := schema.ParseDir(dir)
	if err != nil {
		return err
	}

	builder := registry.NewBuilder(nil)
	var failed int
	for _, s := range schemas {
		if err := builder.Register(s); err != nil {
			failed++
			fmt.Printf("FAIL  %s\n      %v\n", s.Action, err)
			continue
		}
		fmt.Printf("ok    %s\n", s.Action)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schemas invalid", failed, len(schemas))
	}
	fmt.Printf("%d schemas valid\n", len(schemas))
	return nil
}

// watchDir re-lints the schema directory on every write or create.
// Lint failures are reported but do not stop the watch.
func watchDir(dir string) error {
	if err := lintDir(dir); err != nil {
		fmt.Println(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Printf("watching %s for changes\n", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaFile(event.Name) {
				continue
			}
			// Atomic saves show up as create events.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				fmt.Printf("\n%s changed\n", filepath.Base(event.Name))
				if err := lintDir(dir); err != nil {
					fmt.Println(err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch error: %v\n", err)
		}
	}
}

func isSchemaFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
