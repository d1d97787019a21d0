package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slipgen/internal/format"
	"slipgen/pkg/slipgen"
)

func sampleResult() *slipgen.Result {
	return &slipgen.Result{
		X: slipgen.Grid{{0, 1, 2}, {3, 4, 5}},
		Y: slipgen.Grid{{0.5, 1.5, 2.5}, {3.5, 4.5, 5.5}},
		Z: slipgen.Grid{{-1, -2, -3}, {-4, -5, 1e-7}},
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]format.Mode{
		"":         format.ASCII,
		"ASCII":    format.ASCII,
		"md":       format.Markdown,
		"markdown": format.Markdown,
		"tsv":      format.TSV,
	} {
		got, err := format.ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := format.ParseMode("csv"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestWriteResult_ASCII(t *testing.T) {
	var buf bytes.Buffer
	if err := format.WriteResult(&buf, format.ASCII, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// StyleLight uses box-drawing characters
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
	for _, want := range []string{"X", "Y", "Z", "4.5", "1E-07", "NODES"} {
		if !strings.Contains(strings.ToUpper(out), want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteResult_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := format.WriteResult(&buf, format.Markdown, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "|") || !strings.Contains(out, "X") {
		t.Errorf("expected markdown table with an X column:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestWriteResult_TSVDecodesBack(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	if err := format.WriteResult(&buf, format.TSV, res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "0\t0.5\t-1\n1\t1.5\t-2\n") {
		t.Errorf("unexpected TSV layout:\n%s", buf.String())
	}

	x, y, z, err := slipgen.DecodeResponse(&buf, 2, 3)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	got := &slipgen.Result{X: x, Y: y, Z: z}
	if diff := cmp.Diff(res, got); diff != "" {
		t.Errorf("TSV round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteGrid(t *testing.T) {
	g := slipgen.Grid{{0.25, 1}, {2, 3.75}}

	var tsv bytes.Buffer
	if err := format.WriteGrid(&tsv, format.TSV, g); err != nil {
		t.Fatal(err)
	}
	if tsv.String() != "0.25\t1\n2\t3.75\n" {
		t.Errorf("TSV grid = %q", tsv.String())
	}

	var ascii bytes.Buffer
	if err := format.WriteGrid(&ascii, format.ASCII, g); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ascii.String(), "3.75") {
		t.Errorf("expected value in ASCII grid:\n%s", ascii.String())
	}
}

func TestTableBuilder_ASCIIAndMarkdown(t *testing.T) {
	for _, m := range []format.Mode{format.ASCII, format.Markdown} {
		tb := format.NewTable(m)
		tb.Header("Node", "Slip")
		tb.Row(0, "1.25")
		tb.Footer("TOTAL", 1)
		tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
		out := tb.String()

		if !strings.Contains(out, "1.25") {
			t.Errorf("%s: expected row value in output:\n%s", m, out)
		}
		hasBox := strings.Contains(out, "───")
		if want := m == format.ASCII; hasBox != want {
			t.Errorf("%s: box-drawing characters present = %v, want %v:\n%s", m, hasBox, want, out)
		}
	}
}
