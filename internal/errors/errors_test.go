package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantMsg   string
		wantCat   Category
		wantGroup string
	}{
		{
			name:      "improper render count",
			code:      "E102",
			wantMsg:   "Improper render: too many elements",
			wantCat:   CategoryRender,
			wantGroup: "E100",
		},
		{
			name:    "not quiet",
			code:    "E110",
			wantMsg: "Not quiet: waiting on resources",
			wantCat: CategoryResource,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Group != tt.wantGroup {
				t.Errorf("Group = %q, want %q", err.Group, tt.wantGroup)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "page.yaml")
	if err.Message != `file "page.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `file "page.yaml" not found` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestError_Error(t *testing.T) {
	err := New("E102").WithDetail("Instead 2 elements were generated.")
	want := "E102: Improper render: too many elements: Instead 2 elements were generated."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Is(t *testing.T) {
	group := New("E100")
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same code", New("E101"), New("E101"), true},
		{"group sentinel", New("E104"), group, true},
		{"different code", New("E101"), New("E102"), false},
		{"no group", New("E110"), group, false},
		{"wrapped", fmt.Errorf("render: %w", New("E102")), group, true},
		{"plain target", New("E101"), stderrors.New("E101"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stderrors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "page.yaml")
	content := "root:\n  - tag: div\n  - tag: span\n  - text: x\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E102").WithLocation(tmpFile, 3, 5)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 3 {
		t.Errorf("Location.Line = %d, want 3", err.Location.Line)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
}

func TestError_Wrap(t *testing.T) {
	inner := stderrors.New("boom")
	outer := New("E130").Wrap(inner)
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E130") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("E110")
	if FromError(e, "E130") != e {
		t.Error("FromError should return *Error as-is")
	}

	std := stderrors.New("yaml: line 3")
	result := FromError(std, "E130")
	if result.Wrapped != std || result.Code != "E130" {
		t.Errorf("standard error should be wrapped in E130, got %+v", result)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"with column", &Location{File: "a.yaml", Line: 10, Column: 5}, "a.yaml:10:5"},
		{"without column", &Location{File: "a.yaml", Line: 10}, "a.yaml:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(tmpFile, []byte("a\nb\nc\nd\ne\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E102").
		WithLocation(tmpFile, 3, 2).
		WithDetail("Instead 2 elements were generated.").
		WithSuggestion("Do you want to wrap your elements in a div?").
		WithExample("root:\n  tag: div")

	formatted := err.Format()

	for _, want := range []string{
		"ERROR E102: Improper render: too many elements",
		tmpFile + ":3:2",
		"→    3 │ c",
		"Instead 2 elements were generated.",
		"Hint: Do you want to wrap your elements in a div?",
		"Example:",
		"Learn more: https://vdsl.dev/docs/errors/E102",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E110").WithSuggestion("retry later")
	err.Location = &Location{File: "page.yaml", Line: 4}

	want := "page.yaml:4: E110: Not quiet: waiting on resources: An element is waiting on external data while strict rendering is enabled. (retry later)"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E102").WithDetail("Instead 3 elements were generated.")
	err.Location = &Location{File: "page.yaml", Line: 2}
	js := err.FormatJSON()

	for _, want := range []string{
		`"code":"E102"`,
		`"category":"render"`,
		`"detail":"Instead 3 elements were generated."`,
		`"location":{"file":"page.yaml","line":2}`,
	} {
		if !strings.Contains(js, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, js)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("play: %w", New("E131")))
	if !strings.Contains(buf.String(), "ERROR E131: Unknown component") {
		t.Errorf("Fprint should format wrapped *Error, got %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint plain = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	if _, ok := GetTemplate("E101"); !ok {
		t.Error("E101 should exist")
	}
	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
	if len(GetAllCodes()) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	Register("E999", ErrorTemplate{Category: CategoryCLI, Message: "Custom test error"})
	defer delete(registry, "E999")
	if New("E999").Message != "Custom test error" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
