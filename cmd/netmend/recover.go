package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"netmend/internal/driver"
	"netmend/internal/source"
)

var recoverCmd = &cobra.Command{
	Use:   "recover [flags] <dump.netlog|directory>",
	Short: "Recover usable JSON from a truncated NetLog dump",
	Long:  `Scan a truncated or corrupted NetLog dump, keep every complete event, and write a well-formed JSON document next to the input`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRecover,
}

func init() {
	recoverCmd.Flags().StringP("output", "o", "", "output path (single file only, default: input with suffix)")
	recoverCmd.Flags().String("suffix", "", "output suffix replacing the input extension (default: .json)")
	recoverCmd.Flags().String("ext", "", "dump extension for directory mode (default: .netlog)")
	recoverCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	recoverCmd.Flags().Bool("no-cache", false, "disable the skip-cache of already recovered dumps")
	recoverCmd.Flags().Bool("dry-run", false, "scan without writing output")
	recoverCmd.Flags().String("ui", "auto", "interactive progress for directory mode (auto|on|off)")
}

func runRecover(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	if err := applyColorMode(cmd); err != nil {
		return err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	suffix, err := cmd.Flags().GetString("suffix")
	if err != nil {
		return err
	}
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiChoice, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("recover: %w", err)
	}
	if info.IsDir() && outputPath != "" {
		return fmt.Errorf("recover: --output can only be used with a single file")
	}

	// Манифест задаёт умолчания; флаги главнее.
	manifestDir := targetPath
	if !info.IsDir() {
		manifestDir = filepath.Dir(targetPath)
	}
	manifest, found, err := loadProjectManifest(manifestDir)
	if err != nil {
		return err
	}
	if found {
		if suffix == "" {
			suffix = manifest.Config.Output.Suffix
		}
		if ext == "" {
			ext = manifest.Config.Recover.Ext
		}
		if jobs == 0 {
			jobs = manifest.Config.Recover.Jobs
		}
	}

	opts := driver.Options{
		OutputPath:     outputPath,
		Suffix:         suffix,
		Ext:            ext,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		EnableTimings:  showTimings,
		DryRun:         dryRun,
	}
	if !noCache && !dryRun {
		opts.Cache = openDefaultCache()
	}

	if !info.IsDir() {
		return runRecoverFile(cmd, targetPath, &opts, quiet)
	}
	return runRecoverDir(cmd, targetPath, &opts, uiChoice, quiet)
}

func runRecoverFile(cmd *cobra.Command, path string, opts *driver.Options, quiet bool) error {
	fileSet := source.NewFileSet()
	res, err := driver.RecoverFile(cmd.Context(), fileSet, path, opts)
	res.Err = err
	printResult(cmd.OutOrStdout(), fileSet, res, quiet)
	if err != nil {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // итог уже напечатан
	}
	return nil
}

func runRecoverDir(cmd *cobra.Command, dir string, opts *driver.Options, uiChoice uiMode, quiet bool) error {
	var (
		fileSet *source.FileSet
		results []driver.Result
		err     error
	)
	if shouldUseTUI(uiChoice) {
		fileSet, results, err = runRecoverDirWithUI(cmd.Context(), dir, opts)
	} else {
		fileSet, results, err = driver.RecoverDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("recover: %w", err)
	}

	failed := 0
	for _, res := range results {
		printResult(cmd.OutOrStdout(), fileSet, res, quiet)
		if res.Err != nil {
			failed++
		}
	}
	if len(results) == 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "no %s dumps found under %s\n", extOrDefault(opts), dir)
	}
	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("recover: %d of %d dump(s) failed", failed, len(results))
	}
	return nil
}

// openDefaultCache открывает кеш в пользовательской директории.
// Любая ошибка просто отключает кеш: восстановление важнее.
func openDefaultCache() *driver.DiskCache {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil
	}
	cache, err := driver.OpenDiskCache(filepath.Join(base, "netmend"))
	if err != nil {
		return nil
	}
	return cache
}
