package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "lifecycle error",
			code:    "L001",
			wantMsg: "Component already mounted",
			wantCat: CategoryLifecycle,
		},
		{
			name:    "render error",
			code:    "R001",
			wantMsg: "Invalid insertion index",
			wantCat: CategoryRender,
		},
		{
			name:    "config error",
			code:    "C001",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "Z999",
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
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRender, "index %d out of range", -1)
	if err.Message != "index -1 out of range" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != "index -1 out of range" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestError_Error(t *testing.T) {
	err := New("L002").WithOp("unmount").WithSubject("Counter")
	want := "L002: unmount: Component not mounted (Counter)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_Wrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("L001").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
	var target *Error
	if !stderrors.As(err, &target) || target.Code != "L001" {
		t.Error("errors.As should find the coded error")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("L001").
		WithOp("mount").
		WithSubject("Counter").
		WithSuggestion("Unmount before mounting again").
		Wrap(stderrors.New("already mounted"))

	out := err.Format()
	for _, want := range []string{
		"ERROR L001: Component already mounted",
		"during mount [Counter]",
		"Cause: already mounted",
		"Hint: Unmount before mounting again",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("R001").WithOp("mount")
	if got := err.FormatCompact(); got != "R001: mount: Invalid insertion index" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Errorf("GetTemplate(%q) not found", code)
			continue
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %q is incomplete: %+v", code, tmpl)
		}
	}

	Register("T001", ErrorTemplate{Category: CategoryCLI, Message: "Test"})
	if _, ok := GetTemplate("T001"); !ok {
		t.Error("Register did not add the template")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("", 10); got != nil {
		t.Errorf("wrapText(\"\") = %v, want nil", got)
	}
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "coded",
			err:  New("C002").WithSubject("dev.port"),
			want: []string{"ERROR C002: Invalid configuration value (config)", "[dev.port]"},
		},
		{
			name: "coded inside a chain",
			err:  fmt.Errorf("serve: %w", New("X001").WithSubject("nope")),
			want: []string{"ERROR X001: Unknown demo", "[nope]"},
		},
		{
			name: "cause chain",
			err:  New("S001").Wrap(fmt.Errorf("hook: %w", stderrors.New("disk full"))),
			want: []string{"Cause: hook: disk full", "Cause: disk full"},
		},
		{
			name: "plain",
			err:  stderrors.New("boom"),
			want: []string{"ERROR: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			Fprint(&b, tt.err)
			for _, want := range tt.want {
				if !strings.Contains(b.String(), want) {
					t.Errorf("output missing %q in:\n%s", want, b.String())
				}
			}
		})
	}
}
