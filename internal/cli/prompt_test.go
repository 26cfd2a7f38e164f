package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func Test_NewPrompter_Uses_Reader_When_Stdout_Is_Not_A_Terminal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdin, err := os.CreateTemp(dir, "stdin")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { _ = stdin.Close() })

	stdout, err := os.CreateTemp(dir, "stdout")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { _ = stdout.Close() })

	var stderr bytes.Buffer

	tests := []struct {
		name string
		in   io.Reader
		out  io.Writer
	}{
		{name: "RedirectedStdout", in: stdin, out: stdout},
		{name: "BufferStdout", in: stdin, out: &bytes.Buffer{}},
		{name: "ReaderStdin", in: strings.NewReader("x\n"), out: stdout},
	}

	for _, tt := range tests {
		p := newPrompter(tt.in, tt.out, &stderr)

		rp, ok := p.(readerPrompter)
		if !ok {
			t.Fatalf("%s: newPrompter=%T, want readerPrompter", tt.name, p)
		}

		if rp.out != &stderr {
			t.Fatalf("%s: questions go to %v, want stderr", tt.name, rp.out)
		}
	}
}

func Test_NewPrompter_Returns_Nil_When_Stdin_Is_Nil(t *testing.T) {
	t.Parallel()

	if p := newPrompter(nil, &bytes.Buffer{}, &bytes.Buffer{}); p != nil {
		t.Fatalf("newPrompter(nil)=%T, want nil", p)
	}
}

func Test_ReaderPrompter_Writes_Question_To_ErrOut(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	p := newPrompter(strings.NewReader("hero\n"), &stdout, &stderr)

	got, err := p.Prompt("Base name for shots", "Name")
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}

	if got != "hero" {
		t.Fatalf("Prompt=%q, want hero", got)
	}

	if stdout.Len() != 0 {
		t.Fatalf("stdout=%q, want empty", stdout.String())
	}

	if want := "Base name for shots [Name]: "; stderr.String() != want {
		t.Fatalf("stderr=%q, want %q", stderr.String(), want)
	}
}
