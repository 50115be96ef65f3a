package utils

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var bytesToStringTests = []struct {
	in  []byte
	out string
}{
	{[]byte{}, ""},
	{[]byte("mesh01"), "mesh01"},
	{[]byte("mesh01\x00garbage"), "mesh01"},
	{[]byte{'c', 'a', 'f', 0xe9, 0}, "café"},
}

func TestBytesToString(t *testing.T) {
	for _, test := range bytesToStringTests {
		if result := BytesToString(test.in); result != test.out {
			t.Errorf("BytesToString(%q)=%q; expected %q", test.in, result, test.out)
		}
	}
}

func TestStringToBytes(t *testing.T) {
	bs, err := StringToBytes("café", true)
	if err != nil {
		t.Fatal(err)
	}
	if expected := []byte{'c', 'a', 'f', 0xe9, 0}; !bytes.Equal(bs, expected) {
		t.Errorf("StringToBytes(\"café\")=%v; expected %v", bs, expected)
	}
}

func TestDumpToOneLineString(t *testing.T) {
	if result := DumpToOneLineString([]byte("LFVF\x01\x00")); result != `LFVF\x01\x00` {
		t.Errorf("DumpToOneLineString=%q", result)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Printf("nothing %d", 1)
	l.Println("nothing")

	var buf bytes.Buffer
	l = &Logger{&buf}
	l.Printf("stride %d", 32)
	if buf.String() != "stride 32\n" {
		t.Errorf("Logger wrote %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	if l, f := NewFileLogger("", "mesh.log"); l != nil || f != nil {
		t.Errorf("NewFileLogger without dir returned %v, %v", l, f)
	}

	dir := t.TempDir()
	l, f := NewFileLogger(dir, "models/ship.sm3.log")
	if f == nil {
		t.Fatal("NewFileLogger returned no file")
	}
	l.Printf("triangles %d", 12)
	f.Close()
	if data, err := os.ReadFile(filepath.Join(dir, "models", "ship.sm3.log")); err != nil || string(data) != "triangles 12\n" {
		t.Errorf("log file contains %q, %v", data, err)
	}

	// a regular file blocks the directory
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0666); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	if l, f := NewFileLogger(blocker, "sub/mesh.log"); l != nil || f != nil {
		t.Errorf("NewFileLogger under a file returned %v, %v", l, f)
	}
	if !strings.Contains(out.String(), "[utils] Cannot create log directory") {
		t.Errorf("failure was not logged: %q", out.String())
	}
}
