package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestReadDescription(t *testing.T) {
	got, err := readDescription("inline", strings.NewReader("ignored"))
	if err != nil || got != "inline" {
		t.Fatalf("readDescription inline = %q, %v", got, err)
	}

	got, err = readDescription("-", strings.NewReader("from stdin\r\n"))
	if err != nil {
		t.Fatalf("readDescription stdin: %v", err)
	}
	if got != "from stdin" {
		t.Fatalf("expected trailing newline trimmed, got %q", got)
	}
}

func TestEncodeJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, map[string]int{"count": 2}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.String() != "{\n  \"count\": 2\n}\n" {
		t.Fatalf("unexpected JSON %q", buf.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(context.Background(), &out, strings.NewReader(tt.input), "Delete?")
		if err != nil {
			t.Fatalf("confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete? [y/N] " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestConfirmHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	t.Cleanup(func() { writer.Close() })
	if _, err := confirm(ctx, &bytes.Buffer{}, reader, "Delete?"); err == nil {
		t.Fatal("expected context error")
	}
}
