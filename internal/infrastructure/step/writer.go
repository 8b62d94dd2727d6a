package step

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// WriteFile serializes the model to the STEP file at path.
func WriteFile(m *model.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(m, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes the model, entities in ascending handle order, so that
// the output is a valid input for Read.
func Write(m *model.Model, w io.Writer) error {
	bw := bufio.NewWriter(w)

	h := m.Header
	if h.Timestamp == "" {
		h.Timestamp = time.Now().Format("2006-01-02T15:04:05")
	}
	if len(h.Description) == 0 {
		h.Description = []string{""}
	}

	fmt.Fprintln(bw, "ISO-10303-21;")
	fmt.Fprintln(bw, "HEADER;")
	fmt.Fprintf(bw, "FILE_DESCRIPTION(%s,'2;1');\n", quotedList(h.Description))
	fmt.Fprintf(bw, "FILE_NAME(%s,%s,%s,%s,%s,%s,%s);\n",
		quoted(h.Name), quoted(h.Timestamp),
		quotedList(h.Authors), quotedList(h.Organizations),
		quoted(h.Preprocessor), quoted(h.Origin), quoted(h.Authorization))
	fmt.Fprintf(bw, "FILE_SCHEMA(('%s'));\n", m.Schema().Name())
	fmt.Fprintln(bw, "ENDSEC;")
	fmt.Fprintln(bw, "DATA;")

	for _, e := range m.All() {
		fmt.Fprintf(bw, "#%d=%s(", e.ID(), strings.ToUpper(e.Type()))
		for i := 0; i < e.AttrCount(); i++ {
			if i > 0 {
				bw.WriteByte(',')
			}
			writeValue(bw, e.AttrAt(i))
		}
		fmt.Fprintln(bw, ");")
	}

	fmt.Fprintln(bw, "ENDSEC;")
	fmt.Fprintln(bw, "END-ISO-10303-21;")
	return bw.Flush()
}

func writeValue(bw *bufio.Writer, v model.Value) {
	switch t := v.(type) {
	case nil, model.Null:
		bw.WriteByte('$')
	case model.Derived:
		bw.WriteByte('*')
	case model.Real:
		bw.WriteString(formatReal(float64(t)))
	case model.Int:
		bw.WriteString(strconv.FormatInt(int64(t), 10))
	case model.Boolean:
		if t {
			bw.WriteString(".T.")
		} else {
			bw.WriteString(".F.")
		}
	case model.Str:
		bw.WriteString(quoted(string(t)))
	case model.Enum:
		bw.WriteByte('.')
		bw.WriteString(string(t))
		bw.WriteByte('.')
	case model.Ref:
		fmt.Fprintf(bw, "#%d", t.Target.ID())
	case model.List:
		bw.WriteByte('(')
		for i, item := range t {
			if i > 0 {
				bw.WriteByte(',')
			}
			writeValue(bw, item)
		}
		bw.WriteByte(')')
	case model.Typed:
		bw.WriteString(strings.ToUpper(t.Type))
		bw.WriteByte('(')
		writeValue(bw, t.Inner)
		bw.WriteByte(')')
	}
}

// formatReal keeps the STEP convention of reals always carrying a decimal
// point or exponent.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'G', -1, 64)
	if !strings.ContainsAny(s, ".E") {
		s += "."
	}
	return s
}

func quoted(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quotedList(items []string) string {
	if len(items) == 0 {
		return "('')"
	}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = quoted(s)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
