package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Logger writes decode traces, nil Logger discards everything
type Logger struct {
	io.Writer
}

func (l *Logger) Println(a ...interface{}) {
	if l != nil && l.Writer != nil {
		fmt.Fprintln(l, a...)
	}
}

func (l *Logger) Printf(format string, a ...interface{}) {
	if l != nil && l.Writer != nil {
		fmt.Fprintf(l, format+"\n", a...)
	}
}

// NewFileLogger creates dir/name, returns nil logger when dir is empty.
// Caller closes returned file if it is not nil.
func NewFileLogger(dir, name string) (*Logger, *os.File) {
	if dir == "" {
		return nil, nil
	}
	fpath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fpath), 0777); err != nil {
		log.Printf("[utils] Cannot create log directory: %v", err)
		return nil, nil
	}
	f, err := os.Create(fpath)
	if err != nil {
		log.Printf("[utils] Cannot create log file: %v", err)
		return nil, nil
	}
	return &Logger{f}, f
}
