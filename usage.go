package xsettings

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
	"github.com/sxwebdev/xsettings/plugins/defaults"
	"github.com/sxwebdev/xsettings/plugins/env"
)

const (
	usageTag    = "usage"
	valueHeader = "value"
)

func init() {
	plugins.RegisterTag(usageTag)
}

// Usage lists the user configurable fields of a settings value with their
// current value, env variable (with WithEnvPrefix), default tag and usage text.
func Usage(v any, opts ...Option) (string, error) {
	o := newOptions(opts)

	conf, err := addressable(v)
	if err != nil {
		return "", err
	}

	ps := []plugins.Plugin{defaults.NewMetaOnly()}
	if o.envEnabled {
		ps = append(ps, env.New(o.envPrefix, o.envLookup))
	}
	ps = append(ps, o.plugins...)

	c, err := Custom(conf, ps...)
	if err != nil {
		return "", err
	}

	fields := userConfigurableFields(c.Fields())

	setUsageMeta(fields)
	headers := getHeaders(fields)

	buf := bytes.NewBuffer(nil)
	w := tabwriter.NewWriter(buf, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "\nUser Configurable Fields:\n")
	fmt.Fprintln(w, strings.ToUpper(strings.Join(headers, "\t")))

	dashes := make([]string, len(headers))
	for i, f := range headers {
		n := len(f)
		if n < 5 {
			n = 5
		}
		dashes[i] = strings.Repeat("-", n)
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))

	for _, f := range fields {
		values := make([]string, len(headers))
		values[0] = f.Name()
		for i, header := range headers[1:] {
			value := f.Meta()[header]

			if header == valueHeader && f.FieldValue().CanInterface() {
				value = fmt.Sprintf("%v", f.FieldValue().Interface())
			}

			values[i+1] = value
		}

		fmt.Fprintln(w, strings.Join(values, "\t"))
	}

	if err := w.Flush(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func userConfigurableFields(fs flat.Fields) flat.Fields {
	out := make(flat.Fields, 0, len(fs))
	for _, f := range fs {
		if f.FieldType().IsExported() && f.UserConfigurable() {
			out = append(out, f)
		}
	}
	return out
}

// addressable returns a pointer to a settings struct, copying v if needed.
func addressable(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ErrUnexpectedType
		}
		return v, nil
	}

	if rv.Kind() != reflect.Struct {
		return nil, ErrUnexpectedType
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr.Interface(), nil
}

func setUsageMeta(fs flat.Fields) {
	for _, f := range fs {
		usage, ok := f.Tag(usageTag)
		if !ok {
			continue
		}

		f.Meta()[usageTag] = usage
	}
}

func getHeaders(fs flat.Fields) []string {
	tagMap := map[string]struct{}{}

	for _, f := range fs {
		for key := range f.Meta() {
			tagMap[key] = struct{}{}
		}
	}

	tags := make([]string, 0, len(tagMap)+2)

	tags = append(tags, "field", valueHeader)

	for key := range tagMap {
		tags = append(tags, key)
	}

	weights := map[string]int{
		"field":     1,
		valueHeader: 2,
		"env":       4,
		"usage":     99,
	}

	weight := func(tags []string, i int) int {
		key := tags[i]
		w, ok := weights[key]
		if !ok {
			return 98
		}
		return w
	}

	sort.SliceStable(tags, func(i, j int) bool {
		iw := weight(tags, i)
		jw := weight(tags, j)

		if iw == jw {
			return tags[i] < tags[j]
		}

		return iw < jw
	})

	return tags
}
