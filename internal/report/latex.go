package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

var latexEscaper = strings.NewReplacer("_", `\_`, "%", `\%`)

// EscapeLaTeX escapes the characters that appear in result names and labels.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

var latexTmpl = template.Must(template.New("table").Funcs(template.FuncMap{
	"esc": EscapeLaTeX,
	"row": func(cells [4]string) string {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = EscapeLaTeX(c)
		}
		return strings.Join(escaped, " & ")
	},
	"header": func() string {
		escaped := make([]string, len(Percentiles))
		for i, p := range Percentiles {
			escaped[i] = EscapeLaTeX(p)
		}
		return strings.Join(escaped, " & ")
	},
}).Parse(`\begin{table*}[htbp]
\centering
\caption{Performance Metrics for {{esc .Caption}}}
\label{tab:{{.Label}}}
\begin{tabular}{lcccc}
\hline
Metric & {{header}} \\
\hline
{{range .Rows}}{{esc .Label}} & {{row .Cells}} \\
{{end}}\hline
\end{tabular}
\end{table*}

`))

// WriteLaTeX writes one table* environment per entry.
func WriteLaTeX(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if err := latexTmpl.Execute(w, e); err != nil {
			return fmt.Errorf("failed to render table for %s: %w", e.File, err)
		}
	}
	return nil
}
