package generator

import (
	"strings"
	"text/template"
)

// componentData is the template input for one component source file
type componentData struct {
	ClassName    string
	Requirements []requirementData
	CtorParams   string
	Accessors    []accessorData
	Methods      []accessorData
	Proxies      []proxyData
	Helpers      []helperData
}

type requirementData struct {
	Type  string
	Field string
}

type accessorData struct {
	ReturnType string
	Name       string
	Body       string
}

type proxyData struct {
	ReturnType string
	Name       string
	Params     string
	Body       string
}

type helperData struct {
	ReturnType string
	Name       string
	ParamType  string
	Lines      []string
}

const componentTemplate = `// Code generated by jwire. DO NOT EDIT.

final class {{.ClassName}} {
{{- range .Requirements}}
    private final {{.Type}} {{.Field}};
{{- end}}
{{- if .Requirements}}

    {{.ClassName}}({{.CtorParams}}) {
{{- range .Requirements}}
        this.{{.Field}} = {{.Field}};
{{- end}}
    }
{{- end}}
{{- range .Accessors}}

    {{.ReturnType}} {{.Name}}() {
        return {{.Body}};
    }
{{- end}}
{{- range .Methods}}

    {{.ReturnType}} {{.Name}}() {
        return {{.Body}};
    }
{{- end}}
{{- range .Proxies}}

    static {{.ReturnType}} {{.Name}}({{.Params}}) {
        return {{.Body}};
    }
{{- end}}
{{- range .Helpers}}

    static {{.ReturnType}} {{.Name}}({{.ParamType}} instance) {
{{- range .Lines}}
        {{.}}
{{- end}}
        return instance;
    }
{{- end}}
}
`

var componentTmpl = template.Must(template.New("component").Parse(componentTemplate))

// renderComponent renders the component source from its template data
func renderComponent(data *componentData) (string, error) {
	var out strings.Builder
	if err := componentTmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
