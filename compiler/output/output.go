package output

import (
	"io"
	"os"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	// Writer writes text line by line.
	Writer struct {
		w io.Writer

		b []byte
	}

	File struct {
		Writer

		f *os.File
	}

	Error struct {
		Err error
	}
)

func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Create opens the file for writing, creating or truncating it.
func Create(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, &Error{Err: err}
	}

	return &File{
		Writer: Writer{w: f},
		f:      f,
	}, nil
}

func (w *Writer) Writeln(line string) error {
	w.b = append(w.b[:0], line...)

	return w.flush()
}

// Printf formats according to the format and writes it as a line.
func (w *Writer) Printf(format string, args ...any) error {
	w.b = hfmt.Appendf(w.b[:0], format, args...)

	return w.flush()
}

func (w *Writer) flush() error {
	w.b = append(w.b, '\n')

	_, err := w.w.Write(w.b)
	if err != nil {
		return &Error{Err: err}
	}

	return nil
}

func (f *File) Close() error {
	err := f.f.Close()
	if err != nil {
		return &Error{Err: err}
	}

	return nil
}

func (e *Error) Error() string {
	return "output: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
