package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"netmend/internal/diag"
	"netmend/internal/driver"
	"netmend/internal/observ"
	"netmend/internal/source"
)

var (
	summaryOkColor     = color.New(color.FgGreen)
	summaryCacheColor  = color.New(color.FgCyan)
	summaryFailColor   = color.New(color.FgRed, color.Bold)
	summaryWarnColor   = color.New(color.FgYellow)
	summaryHeaderColor = color.New(color.Bold)
)

// printResult выводит итог восстановления одного дампа.
func printResult(out io.Writer, fileSet *source.FileSet, res driver.Result, quiet bool) {
	switch {
	case res.Err != nil:
		summaryFailColor.Fprintf(out, "fail   %s\n", res.Path)
		fmt.Fprintf(out, "       %v\n", res.Err)
	case res.CacheHit:
		summaryCacheColor.Fprintf(out, "cached %s -> %s\n", res.Path, res.OutputPath)
	default:
		events := 0
		if res.Doc != nil {
			events = res.Doc.EventCount()
		}
		summaryOkColor.Fprintf(out, "ok     %s -> %s", res.Path, res.OutputPath)
		fmt.Fprintf(out, "  (%d event(s)", events)
		if res.Bag != nil && res.Bag.Len() > 0 {
			fmt.Fprintf(out, ", %d warning(s)", res.Bag.Len())
		}
		fmt.Fprintln(out, ")")
	}

	if !quiet && res.Bag != nil {
		printDiagnostics(out, fileSet, res.Bag)
	}
	if res.Timing != nil {
		printTimings(out, res.Timing)
	}
}

// printDiagnostics выводит диагностики с позициями line:col, когда спан известен.
func printDiagnostics(out io.Writer, fileSet *source.FileSet, bag *diag.Bag) {
	bag.Sort()
	for _, d := range bag.Items() {
		sevColor := summaryWarnColor
		if d.Severity >= diag.SevError {
			sevColor = summaryFailColor
		}
		fmt.Fprint(out, "       ")
		sevColor.Fprintf(out, "%s[%s]", d.Severity, d.Code.ID())
		// пустой спан = диагностика без позиции (например, отсутствующая секция)
		if fileSet != nil && !d.Primary.Empty() {
			start, _ := fileSet.Resolve(d.Primary)
			fmt.Fprintf(out, " %d:%d", start.Line, start.Col)
		}
		fmt.Fprintf(out, " %s\n", d.Message)
	}
}

func printTimings(out io.Writer, report *observ.Report) {
	summaryHeaderColor.Fprintln(out, "       timings:")
	fmt.Fprint(out, report.Format("         "))
}
