package xsettings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sxwebdev/xsettings/plugins/env"
)

const cellSeparator = "|"

// GenerateMarkdown renders the user configurable fields of a settings value as
// a markdown table. The env column is added when WithEnvPrefix is given.
func GenerateMarkdown(v any, opts ...Option) (string, error) {
	o := newOptions(opts)

	conf, err := addressable(v)
	if err != nil {
		return "", err
	}

	c, err := Custom(conf)
	if err != nil {
		return "", err
	}

	fields := userConfigurableFields(c.Fields())

	var table [][]string //nolint:prealloc

	header := []string{"**Name**"}
	if o.envEnabled {
		header = append(header, "**Env**")
	}
	header = append(header, "**Required**", "**Value**", "**Usage**", "**Example**")
	table = append(table, header)

	sizes := make([]int, len(table[0]))

	for i, cell := range table[0] {
		sizes[i] = utf8.RuneCountInString(cell) + 2
	}

	for _, f := range fields {
		var isRequired bool
		var value string
		var usage string
		var example string

		if val, ok := f.Tag("validate"); ok && strings.Contains(val, "required") {
			isRequired = true
		}

		if val := f.FieldValue(); val.CanInterface() {
			value = fmt.Sprintf("%v", val.Interface())
		}

		if val, ok := f.Tag("usage"); ok {
			usage = val
		}

		if val, ok := f.Tag("example"); ok {
			example = val
		}

		cell := []string{"`" + f.Name() + "`"}
		if o.envEnabled {
			cell = append(cell, codeBlock(env.Name(o.envPrefix, f)))
		}
		cell = append(cell,
			boolIcon(isRequired),
			codeBlock(value),
			usage,
			codeBlock(example),
		)
		table = append(table, cell)

		for i, item := range cell {
			if size := utf8.RuneCountInString(item); size+2 > sizes[i] {
				sizes[i] = size + 2
			}
		}
	}

	var out strings.Builder
	for i, row := range table {
		_, _ = out.WriteString(cellSeparator)

		for j, cell := range row {
			size := utf8.RuneCountInString(" " + cell + " ")

			data := strings.Repeat(" ", sizes[j]-size)

			_, _ = out.WriteString(" " + cell + " ")
			_, _ = out.WriteString(data)

			if len(row)-1 != j {
				_, _ = out.WriteString(cellSeparator)
			}
		}

		if i == 0 {
			_, _ = out.WriteString(cellSeparator)
			_, _ = out.WriteRune('\n')

			_, _ = out.WriteString(cellSeparator)
			for j, item := range sizes {
				dashes := strings.Repeat("-", item)
				_, _ = out.WriteString(dashes)

				if len(sizes)-1 != j {
					_, _ = out.WriteString(cellSeparator)
				}
			}
		}

		_, _ = out.WriteString(cellSeparator)
		_, _ = out.WriteRune('\n')
	}

	return strings.TrimSpace(out.String()), nil
}

func boolIcon(value bool) string {
	if value {
		return "✅"
	}

	return " "
}

func codeBlock(val string) string {
	if val == "" {
		return val
	}

	return "`" + val + "`"
}
