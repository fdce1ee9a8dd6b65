package scriptcs

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"
)

const (
	configurationTemplateName = "Configure.csx"
	placeholderField          = "VariableDeclarations"
)

//go:embed templates/Configure.csx
var configurationTemplateText string

// Template is the parsed configuration script template. It holds a single
// placeholder that receives the variable declarations and is never modified
// after parsing.
type Template struct {
	tmpl *template.Template
}

type templateData struct {
	VariableDeclarations string
}

// DefaultTemplate returns the embedded configuration template, parsed on
// first use and shared afterwards.
var DefaultTemplate = sync.OnceValues(LoadTemplate)

// LoadTemplate parses the embedded configuration template.
func LoadTemplate() (*Template, error) {
	return ParseTemplate(configurationTemplateName, configurationTemplateText)
}

// ParseTemplate parses text as a configuration template. The text must
// contain exactly one action, and it must reference .VariableDeclarations.
func ParseTemplate(name, text string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	if err := checkPlaceholder(tmpl); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	return &Template{tmpl: tmpl}, nil
}

func checkPlaceholder(tmpl *template.Template) error {
	if tmpl.Tree == nil || tmpl.Tree.Root == nil {
		return fmt.Errorf("expected exactly one placeholder, found 0")
	}

	var actions []*parse.ActionNode
	for _, node := range tmpl.Tree.Root.Nodes {
		switch n := node.(type) {
		case *parse.TextNode, *parse.CommentNode:
		case *parse.ActionNode:
			actions = append(actions, n)
		default:
			return fmt.Errorf("unsupported template construct %q", node.String())
		}
	}

	if len(actions) != 1 {
		return fmt.Errorf("expected exactly one placeholder, found %d", len(actions))
	}

	for _, cmd := range actions[0].Pipe.Cmds {
		for _, arg := range cmd.Args {
			if field, ok := arg.(*parse.FieldNode); ok && len(field.Ident) == 1 && field.Ident[0] == placeholderField {
				return nil
			}
		}
	}
	return fmt.Errorf("placeholder does not reference .%s", placeholderField)
}

// Render substitutes declarations into the placeholder.
func (t *Template) Render(declarations string) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, templateData{VariableDeclarations: declarations}); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
