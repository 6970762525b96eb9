package tuning

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_ShippedFileMatchesDefaults(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := Defaults(); !reflect.DeepEqual(got, want) {
		t.Fatalf("shipped tuning drifted from Defaults():\n got %+v\nwant %+v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "tuning.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}
