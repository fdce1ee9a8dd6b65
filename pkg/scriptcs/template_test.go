package scriptcs

import (
	"strings"
	"testing"
)

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tmpl.Render("this[a] = b;\nthis[c] = d;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "        this[a] = b;\n        this[c] = d;\n") {
		t.Fatalf("expected indented declarations, got:\n%s", out)
	}
	if strings.Contains(out, "{{") {
		t.Fatalf("placeholder left in output:\n%s", out)
	}
	if !strings.Contains(out, "class OctopusParametersDictionary") {
		t.Fatalf("expected parameters dictionary in output:\n%s", out)
	}
}

func TestDefaultTemplate_LoadedOnce(t *testing.T) {
	first, err := DefaultTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DefaultTemplate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the same template instance on every call")
	}
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantError string
	}{
		{"bare field", "x {{ .VariableDeclarations }} y", ""},
		{"piped", "{{ .VariableDeclarations | indent 4 }}", ""},
		{"with comment", "{{/* header */}}{{ .VariableDeclarations }}", ""},
		{"no placeholder", "static text", "expected exactly one placeholder, found 0"},
		{"empty", "", "expected exactly one placeholder, found 0"},
		{"two placeholders", "{{ .VariableDeclarations }}{{ .VariableDeclarations }}", "expected exactly one placeholder, found 2"},
		{"wrong field", "{{ .Other }}", "does not reference .VariableDeclarations"},
		{"control structure", "{{ if .VariableDeclarations }}{{ end }}", "unsupported template construct"},
		{"syntax error", "{{ .VariableDeclarations", "parsing template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate("test.csx", tt.text)
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTemplate_RenderLeavesBracesAlone(t *testing.T) {
	tmpl, err := ParseTemplate("test.csx", `Console.WriteLine("{0}"); {{ .VariableDeclarations }}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tmpl.Render("decl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `Console.WriteLine("{0}"); decl` {
		t.Fatalf("unexpected output %q", out)
	}
}
