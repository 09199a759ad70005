package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"netmend/internal/diag"
	"netmend/internal/netlog"
	"netmend/internal/observ"
	"netmend/internal/source"
)

// Options configures how dumps are recovered and where the output goes.
type Options struct {
	// OutputPath overrides the derived output path. Single-file mode only.
	OutputPath string
	// Suffix replaces the input extension when OutputPath is empty.
	// Defaults to DefaultSuffix.
	Suffix string
	// Ext selects dump files in directory mode. Defaults to ".netlog".
	Ext string
	// Jobs bounds directory-mode parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds the per-dump diagnostic bag.
	MaxDiagnostics int
	// EnableTimings attaches a phase-timing report to every result.
	EnableTimings bool
	// DryRun recovers without writing anything (inspect mode).
	DryRun bool
	// Cache enables the skip-cache; nil disables it.
	Cache *DiskCache
	// Progress receives per-dump progress events; nil disables them.
	Progress ProgressSink
}

func (o *Options) suffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

func (o *Options) ext() string {
	if o.Ext == "" {
		return ".netlog"
	}
	return o.Ext
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// Result is the outcome of recovering one dump.
type Result struct {
	Path       string
	OutputPath string
	FileID     source.FileID
	Doc        *netlog.Document
	Bag        *diag.Bag
	Timing     *observ.Report
	CacheHit   bool
	// Err is set in directory mode instead of aborting the whole walk.
	Err error
}

// RecoverFile recovers a single dump from disk: load, locate/scan, encode,
// write. The dump is registered in fileSet so spans in the bag stay
// resolvable afterwards.
func RecoverFile(ctx context.Context, fileSet *source.FileSet, path string, opts *Options) (Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := ctx.Err(); err != nil {
		return Result{Path: path}, err
	}

	emit(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	fileID, err := fileSet.Load(path)
	if err != nil {
		emit(opts.Progress, path, StageLoad, StatusError, err, 0)
		return Result{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}, fmt.Errorf("recover: %w", err)
	}
	return RecoverLoaded(ctx, fileSet, fileID, path, opts)
}

// RecoverLoaded recovers a dump that is already registered in fileSet.
func RecoverLoaded(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, path string, opts *Options) (Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	res := Result{
		Path:   path,
		FileID: fileID,
		Bag:    diag.NewBag(opts.maxDiagnostics()),
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = OutputPathFor(path, opts.suffix())
	}
	res.OutputPath = outputPath

	file := fileSet.Get(fileID)
	timer := observ.NewTimer()
	started := time.Now()

	// кеш: вход не менялся и прежний выход на месте — пересчитывать нечего
	if opts.Cache != nil && !opts.DryRun {
		if p := opts.Cache.Lookup(file.Hash); p.Fresh(outputPath) {
			res.CacheHit = true
			emit(opts.Progress, path, StageWrite, StatusCached, nil, time.Since(started))
			finishTiming(&res, timer, opts)
			return res, nil
		}
	}

	emit(opts.Progress, path, StageScan, StatusWorking, nil, time.Since(started))
	phase := timer.Begin("scan")
	doc, err := netlog.Recover(file, diag.BagReporter{Bag: res.Bag})
	if err != nil {
		emit(opts.Progress, path, StageScan, StatusError, err, time.Since(started))
		finishTiming(&res, timer, opts)
		return res, fmt.Errorf("recover %s: %w", path, err)
	}
	timer.End(phase, fmt.Sprintf("%d event(s)", doc.EventCount()))
	res.Doc = doc

	phase = timer.Begin("encode")
	encoded, err := doc.Encode()
	if err != nil {
		emit(opts.Progress, path, StageWrite, StatusError, err, time.Since(started))
		finishTiming(&res, timer, opts)
		return res, fmt.Errorf("recover %s: %w", path, err)
	}
	timer.End(phase, "")

	if !opts.DryRun {
		emit(opts.Progress, path, StageWrite, StatusWorking, nil, time.Since(started))
		phase = timer.Begin("write")
		if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
			res.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOWriteFileError,
				Message:  "failed to write output: " + err.Error(),
			})
			emit(opts.Progress, path, StageWrite, StatusError, err, time.Since(started))
			finishTiming(&res, timer, opts)
			return res, fmt.Errorf("recover %s: %w", path, err)
		}
		timer.End(phase, "")

		if opts.Cache != nil {
			outDigest := sha256.Sum256(encoded)
			// ошибка записи кеша не делает восстановление неудачным
			_ = opts.Cache.Store(file.Hash, Payload{
				InputPath:    path,
				InputDigest:  file.Hash[:],
				OutputPath:   outputPath,
				OutputDigest: outDigest[:],
				EventCount:   doc.EventCount(),
				Warnings:     res.Bag.Len(),
			})
		}
	}

	emit(opts.Progress, path, StageWrite, StatusDone, nil, time.Since(started))
	finishTiming(&res, timer, opts)
	return res, nil
}

func finishTiming(res *Result, timer *observ.Timer, opts *Options) {
	if !opts.EnableTimings {
		return
	}
	report := timer.Report()
	res.Timing = &report
}
