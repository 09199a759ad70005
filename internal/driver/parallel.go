package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"netmend/internal/diag"
	"netmend/internal/source"
)

// ListDumpFiles возвращает отсортированный список всех файлов с данным
// расширением в директории.
func ListDumpFiles(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// RecoverDir recovers every matching dump under dir in parallel. Per-dump
// failures land in Result.Err instead of aborting the walk; the returned
// error covers only the walk itself and context cancellation.
func RecoverDir(ctx context.Context, dir string, opts *Options) (*source.FileSet, []Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	files, err := ListDumpFiles(dir, opts.ext())
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все дампы последовательно: FileSet не потокобезопасен,
	// после этого горутины его только читают.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, path, StageLoad, StatusQueued, nil, 0)
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load dump: " + loadErr.Error(),
				})
				results[i] = Result{Path: path, Bag: bag, Err: loadErr}
				emit(opts.Progress, path, StageLoad, StatusError, loadErr, 0)
				return nil
			}

			// директорный режим: выходной путь всегда производный
			perFile := *opts
			perFile.OutputPath = ""

			res, err := RecoverLoaded(gctx, fileSet, fileIDs[path], path, &perFile)
			res.Err = err
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
