package scan_test

import (
	"testing"

	"netmend/internal/scan"
	"netmend/internal/source"
)

// makeTestFile регистрирует строку как виртуальный дамп
func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.netlog", []byte(input))
	return fs.Get(id)
}

func scanAt(t *testing.T, input string, off uint32) (string, scan.Result) {
	t.Helper()
	f := makeTestFile(input)
	sp, res := scan.ScanValue(f, off)
	return string(sp.Bytes(f.Content)), res
}

func TestScanValueObjects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		res   scan.Result
	}{
		{"flat object", `{"a":1}`, `{"a":1}`, scan.Complete},
		{"nested object", `{"a":{"b":[1,2]}}`, `{"a":{"b":[1,2]}}`, scan.Complete},
		{"object then tail", `{"a":1},{"b":2}`, `{"a":1}`, scan.Complete},
		{"array value", `[1,[2,3],{"x":4}] ,`, `[1,[2,3],{"x":4}]`, scan.Complete},
		{"unclosed object", `{"a":1`, `{"a":1`, scan.Truncated},
		{"unclosed nested", `{"a":[1,2`, `{"a":[1,2`, scan.Truncated},
		{"empty object", `{}`, `{}`, scan.Complete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := scanAt(t, tt.input, 0)
			if res != tt.res {
				t.Fatalf("result = %v, want %v", res, tt.res)
			}
			if got != tt.want {
				t.Fatalf("span = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanValueStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		res   scan.Result
	}{
		{"plain string", `"abc"`, `"abc"`, scan.Complete},
		{"string with comma", `"a,b",1`, `"a,b"`, scan.Complete},
		{"string with brackets", `"{[",1`, `"{["`, scan.Complete},
		{"escaped quote", `"a\"b",1`, `"a\"b"`, scan.Complete},
		{"escaped backslash", `"a\\",1`, `"a\\"`, scan.Complete},
		{"unterminated string", `"abc`, `"abc`, scan.Truncated},
		{"cut after backslash", `"abc\`, `"abc\`, scan.Truncated},
		{"quote inside object", `{"k":"v}"}`, `{"k":"v}"}`, scan.Complete},
		{"unterminated in object", `{"k":"v`, `{"k":"v`, scan.Truncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := scanAt(t, tt.input, 0)
			if res != tt.res {
				t.Fatalf("result = %v, want %v", res, tt.res)
			}
			if got != tt.want {
				t.Fatalf("span = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanValueScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		res   scan.Result
	}{
		{"number to comma", `123,4`, `123`, scan.Complete},
		{"number to bracket", `123]`, `123`, scan.Complete},
		{"number to brace", `123}`, `123`, scan.Complete},
		{"number to eof", `123`, `123`, scan.Complete},
		{"true literal", `true,`, `true`, scan.Complete},
		{"null literal", `null]`, `null`, scan.Complete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := scanAt(t, tt.input, 0)
			if res != tt.res {
				t.Fatalf("result = %v, want %v", res, tt.res)
			}
			if got != tt.want {
				t.Fatalf("span = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanValueAtOffset(t *testing.T) {
	input := `{"constants": {"a":1}, "events": []}`
	got, res := scanAt(t, input, 14)
	if res != scan.Complete {
		t.Fatalf("result = %v, want Complete", res)
	}
	if got != `{"a":1}` {
		t.Fatalf("span = %q, want %q", got, `{"a":1}`)
	}
}
