package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"netmend/internal/driver"
	"netmend/internal/netlog"
	"netmend/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <dump.netlog>",
	Short: "Scan a dump and report what is recoverable without writing output",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type inspectPayload struct {
	Path         string           `json:"path"`
	HasConstants bool             `json:"has_constants"`
	HasEvents    bool             `json:"has_events"`
	EventCount   int              `json:"event_count"`
	Diagnostics  []inspectDiag    `json:"diagnostics"`
	Timings      *json.RawMessage `json:"timings,omitempty"`
}

type inspectDiag struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Line     uint32 `json:"line,omitempty"`
	Col      uint32 `json:"col,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := applyColorMode(cmd); err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		EnableTimings:  showTimings,
		DryRun:         true,
	}

	fileSet := source.NewFileSet()
	res, err := driver.RecoverFile(cmd.Context(), fileSet, path, &opts)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	file := fileSet.Get(res.FileID)
	sections, secErr := netlog.Locate(file)
	if secErr != nil {
		// Recover уже отработал, значит хотя бы одна секция есть
		return fmt.Errorf("inspect: %w", secErr)
	}

	if format == "json" {
		return renderInspectJSON(cmd.OutOrStdout(), fileSet, path, sections, res)
	}
	renderInspectPretty(cmd.OutOrStdout(), fileSet, path, sections, res)
	return nil
}

func renderInspectPretty(out io.Writer, fileSet *source.FileSet, path string, sections netlog.Sections, res driver.Result) {
	summaryHeaderColor.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  constants: %s\n", sectionState(sections.HasConstants, sections.ConstantsTruncated))
	fmt.Fprintf(out, "  events:    %s\n", sectionState(sections.HasEvents, false))
	if res.Doc != nil {
		fmt.Fprintf(out, "  recoverable events: %d\n", res.Doc.EventCount())
	}
	if res.Bag != nil && res.Bag.Len() > 0 {
		fmt.Fprintln(out, "  diagnostics:")
		printDiagnostics(out, fileSet, res.Bag)
	}
	if res.Timing != nil {
		printTimings(out, res.Timing)
	}
}

func renderInspectJSON(out io.Writer, fileSet *source.FileSet, path string, sections netlog.Sections, res driver.Result) error {
	payload := inspectPayload{
		Path:         path,
		HasConstants: sections.HasConstants,
		HasEvents:    sections.HasEvents,
		Diagnostics:  make([]inspectDiag, 0, res.Bag.Len()),
	}
	if res.Doc != nil {
		payload.EventCount = res.Doc.EventCount()
	}
	res.Bag.Sort()
	for _, d := range res.Bag.Items() {
		item := inspectDiag{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if !d.Primary.Empty() {
			start, _ := fileSet.Resolve(d.Primary)
			item.Line = start.Line
			item.Col = start.Col
		}
		payload.Diagnostics = append(payload.Diagnostics, item)
	}
	if res.Timing != nil {
		raw, err := json.Marshal(res.Timing)
		if err == nil {
			msg := json.RawMessage(raw)
			payload.Timings = &msg
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func sectionState(present, truncated bool) string {
	switch {
	case !present:
		return summaryFailColor.Sprint("missing")
	case truncated:
		return summaryWarnColor.Sprint("truncated")
	default:
		return summaryOkColor.Sprint("present")
	}
}
