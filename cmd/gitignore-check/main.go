// Command gitignore-check evaluates paths against a gitignore-style rule
// set, in the spirit of "git check-ignore".
package main

import (
	"fmt"
	"os"

	gitignore "github.com/Guiorgy/gitignore-parser"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/jwalton/gchalk"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "gitignore-check --gitignore FILE [flags] [path ...]",
		Short: "gitignore-check evaluates paths against a gitignore-style rule set.",
		Long: `gitignore-check compiles a gitignore file and reports, for each given path,
whether the rule set denies or accepts it. With --root it walks a directory
tree instead and lists the accepted (or, with --denied, the denied) entries.`,
		Example:               `  gitignore-check --gitignore .gitignore build/app.js src/main.go`,
		RunE:                  run,
		DisableFlagsInUseLine: true,
	}
	ignoreFile   string
	rootDir      string
	listDenied   bool
	includeGlobs []string
	quiet        bool
	verbosity    int
)

func init() {
	rootCmd.Flags().StringVarP(&ignoreFile, "gitignore", "g", ".gitignore", "Ignore file to compile (supports ~ prefix)")
	_ = rootCmd.MarkFlagFilename("gitignore")
	rootCmd.Flags().StringVarP(&rootDir, "root", "r", "", "Walk this directory and list accepted entries instead of checking arguments")
	_ = rootCmd.MarkFlagDirname("root")
	rootCmd.Flags().BoolVar(&listDenied, "denied", false, "With --root, list denied entries instead of accepted ones")
	rootCmd.Flags().StringSliceVar(&includeGlobs, "include-glob", nil, "Globs that limit which walked paths are considered")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output; exit status 1 when any argument path is denied")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	for _, g := range includeGlobs {
		if !doublestar.ValidatePathPattern(g) {
			return errors.Errorf("invalid include glob: %s", g)
		}
	}

	path, err := homedir.Expand(ignoreFile)
	if err != nil {
		return errors.Wrapf(err, "expanding %s", ignoreFile)
	}

	rs, err := gitignore.CompileFile(path)
	if err != nil {
		return err
	}
	for _, w := range rs.Warnings() {
		fmt.Fprintf(os.Stderr, "%s %s:%d: %s (%s)\n",
			gchalk.Yellow("!!!"), path, w.Line, w.Message, w.Pattern)
	}

	cmd.SilenceUsage = true
	if rootDir != "" {
		return listTree(rs)
	}
	return checkPaths(rs, args)
}

// checkPaths reports one verdict per argument path. Exit status 1 signals
// that at least one path was denied.
func checkPaths(rs *gitignore.RuleSet, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no paths given; pass paths as arguments or use --root")
	}

	anyDenied := false
	for _, p := range paths {
		d := rs.Evaluate(p)
		if d.Denied() {
			anyDenied = true
		}
		if quiet {
			continue
		}
		switch {
		case d.Denied():
			fmt.Printf("%s %s%s\n", gchalk.Red("+++"), p, deniedBy(d))
		case verbosity > 0:
			fmt.Printf("%s %s%s\n", gchalk.Green("---"), p, acceptedBy(d))
		}
	}
	if anyDenied {
		os.Exit(1)
	}
	return nil
}

func deniedBy(d gitignore.Decision) string {
	if verbosity > 0 && d.ExcludeRule != "" {
		return fmt.Sprintf("  (rule %q)", d.ExcludeRule)
	}
	return ""
}

func acceptedBy(d gitignore.Decision) string {
	if d.Reincluded && d.ReincludeRule != "" {
		return fmt.Sprintf("  (re-included by %q)", "!"+d.ReincludeRule)
	}
	return ""
}

// listTree walks --root and prints the accepted (or denied) entries.
func listTree(rs *gitignore.RuleSet) error {
	entries, err := list(rs)
	if err != nil {
		return errors.Wrapf(err, "walking %s", rootDir)
	}

	printed := 0
	for _, e := range entries {
		if !included(e) {
			continue
		}
		printed++
		if quiet {
			continue
		}
		fmt.Println(e)
	}
	if verbosity > 0 && !quiet {
		fmt.Fprintf(os.Stderr, "%d entries\n", printed)
	}
	return nil
}

func list(rs *gitignore.RuleSet) ([]string, error) {
	if listDenied {
		return rs.DeniedFiles(os.DirFS(rootDir))
	}
	return rs.AcceptedFiles(os.DirFS(rootDir))
}

func included(path string) bool {
	if len(includeGlobs) == 0 {
		return true
	}
	for _, g := range includeGlobs {
		if ok, _ := doublestar.PathMatch(g, path); ok {
			return true
		}
	}
	return false
}
