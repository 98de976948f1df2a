package patch

import (
	"testing"

	"github.com/spf13/afero"
)

func TestBankLoadCachesDecodedInstruments(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := buildPatch(t, []byte{1, 2, 3}, 0)
	if err := afero.WriteFile(fs, "lead.pat", raw, 0o644); err != nil {
		t.Fatalf("seed filesystem: %v", err)
	}

	bank, err := NewBank(fs, 4)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	first, err := bank.Load("lead.pat")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d instruments, want 1", len(first))
	}

	if err := fs.Remove("lead.pat"); err != nil {
		t.Fatalf("remove seed file: %v", err)
	}

	second, err := bank.Load("lead.pat")
	if err != nil {
		t.Fatalf("Load after removing the backing file should hit the cache, got: %v", err)
	}
	if &first[0] != &second[0] {
		t.Fatalf("cached Load returned a different slice; the LRU cache should have served the same result")
	}
}

func TestBankLoadPropagatesMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	bank, err := NewBank(fs, 4)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if _, err := bank.Load("missing.pat"); err == nil {
		t.Fatal("expected an error loading a nonexistent patch file")
	}
}
