package symbols

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPortfolio_ParsesFile(t *testing.T) {
	path := writeFile(t, "# my holdings\naapl\n\nMSFT\n  ko  \n")

	got, err := LoadPortfolio(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"AAPL", "MSFT", "KO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadPortfolio_MissingFileFallsBack(t *testing.T) {
	got, err := LoadPortfolio(filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, DefaultPortfolio) {
		t.Errorf("got %v, want default portfolio", got)
	}

	// The fallback must be a copy, not the shared default slice.
	got[0] = "MUTATED"
	if DefaultPortfolio[0] == "MUTATED" {
		t.Error("fallback aliases DefaultPortfolio")
	}
	DefaultPortfolio[0] = "AAPL"
}

func TestLoadScanList_MissingFileSkips(t *testing.T) {
	got, err := LoadScanList(filepath.Join(t.TempDir(), "nope.txt"), []string{"AAPL"})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for a missing scan list", got)
	}
}

func TestLoadScanList_ExcludesPortfolio(t *testing.T) {
	path := writeFile(t, "AAPL\nKO\nMSFT\nPEP\n")

	got, err := LoadScanList(path, []string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"KO", "PEP"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadScanList_EmptyFile(t *testing.T) {
	path := writeFile(t, "# nothing yet\n")

	got, err := LoadScanList(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
