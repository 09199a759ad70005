package main

import (
	"bytes"
	"strings"
	"testing"

	"netmend/internal/diag"
	"netmend/internal/netlog"
	"netmend/internal/source"
)

func recoverVirtualDump(t *testing.T, content string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual("dump.netlog", []byte(content))
	bag := diag.NewBag(16)
	if _, err := netlog.Recover(fileSet.Get(fileID), diag.BagReporter{Bag: bag}); err != nil {
		t.Fatalf("Recover: %v", err)
	}
	return fileSet, bag
}

func TestPrintDiagnosticsShowsPosition(t *testing.T) {
	// второй элемент обрывается на строке 2, колонка 19
	fileSet, bag := recoverVirtualDump(t, "{\"constants\":{},\n\"events\":[{\"x\":1},{\"x\":2")

	var buf bytes.Buffer
	printDiagnostics(&buf, fileSet, bag)
	out := buf.String()

	if !strings.Contains(out, "NM1202") {
		t.Fatalf("expected a truncation diagnostic, got:\n%s", out)
	}
	if !strings.Contains(out, "2:19") {
		t.Errorf("expected position 2:19 in output, got:\n%s", out)
	}
}

func TestPrintDiagnosticsOmitsPositionForEmptySpan(t *testing.T) {
	// отсутствующая секция констант — диагностика без позиции
	fileSet, bag := recoverVirtualDump(t, `{"events":[{"x":1}]}`)

	var buf bytes.Buffer
	printDiagnostics(&buf, fileSet, bag)
	out := buf.String()

	if !strings.Contains(out, "NM1001") {
		t.Fatalf("expected a missing-constants diagnostic, got:\n%s", out)
	}
	if strings.Contains(out, "1:1") {
		t.Errorf("positionless diagnostic must not render a position, got:\n%s", out)
	}
}
