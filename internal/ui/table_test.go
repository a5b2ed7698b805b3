package ui

import (
	"strings"
	"testing"
)

func withViewportWidth(t *testing.T, width int) {
	t.Helper()

	originalWidth := tableViewportWidth
	tableViewportWidth = func() int {
		return width
	}
	t.Cleanup(func() {
		tableViewportWidth = originalWidth
	})
}

func TestTruncateTableCellCountsRunes(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellCountsWideRunes(t *testing.T) {
	value := strings.Repeat("日", tableCellMaxWidth)

	got := TruncateTableCell(value)

	if width := displayWidth(got); width > tableCellMaxWidth {
		t.Fatalf("expected at most %d columns, got %d in %q", tableCellMaxWidth, width, got)
	}
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	value := "Hello\nWorld\r\nAgain\tTab"

	got := TruncateTableCell(value)

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	withViewportWidth(t, 0)

	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL                  \nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	withViewportWidth(t, 0)

	builder := NewTableBuilder([]string{"ID", "TEXT"}, 2)
	builder.AddRow([]string{"1", "Buy milk"})
	builder.AddRow([]string{"12", "Call mom"})

	expected := "ID  TEXT    \n1   Buy milk\n12  Call mom\n"
	if got := builder.String(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestFormatTableUsesViewportWidth(t *testing.T) {
	withViewportWidth(t, 10)

	headers := []string{"COL1", "COL2"}
	rows := [][]string{{"A", "B"}}

	got := FormatTable(headers, rows)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for _, line := range lines {
		if width := displayWidth(line); width != 10 {
			t.Fatalf("expected table width 10, got %d in %q", width, line)
		}
	}
}
