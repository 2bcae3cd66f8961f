package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sage-agent/sage/tools"
)

func TestListFiles_SortedWithDirSuffix(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}

	out, err := callTool(t, listFilesDef, tools.ListFilesInput{Path: rel(t)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(out), &names); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	want := []string{"a.txt", "b.txt", "sub/"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestListFiles_Paging(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}

	out, err := callTool(t, listFilesDef, tools.ListFilesInput{Path: rel(t), Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(out), &names); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"c", "d"}) {
		t.Fatalf("got %v", names)
	}
}

func TestListFiles_PageBeyondEnd_EmptyArray(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	out, err := callTool(t, listFilesDef, tools.ListFilesInput{Path: rel(t), Page: 99})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "[]" {
		t.Fatalf("got %q, want empty array", out)
	}
}

func TestListFiles_MissingDir_Error(t *testing.T) {
	_, err := callTool(t, listFilesDef, tools.ListFilesInput{Path: rel(t, "nope")})
	if err == nil {
		t.Fatal("expected error")
	}
}
