package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

func testIdentity() models.AccountIdentity {
	return models.AccountIdentity{HolderName: "Jane Doe", AccountNumber: "12345678"}
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	set, err := store.Load(testIdentity())
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if !set.Empty() {
		t.Errorf("expected empty set, got %+v", set)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	identity := testIdentity()

	set := models.MappingSet{
		CustomMap: models.PairList{
			{Keyword: "rent", Ledger: "Rent"},
			{Keyword: "emi", Ledger: "Loan EMI"},
			{Keyword: "fuel", Ledger: "Vehicle"},
		},
		TrendMap: models.PairList{
			{Keyword: "NEFT SALARY ACME", Ledger: "Salary"},
		},
	}

	if err := store.Save(identity, set); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(identity)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.CustomMap) != 3 {
		t.Fatalf("got %d custom pairs, want 3", len(loaded.CustomMap))
	}
	// First-match-wins semantics require the order to survive the trip.
	for i, want := range []string{"rent", "emi", "fuel"} {
		if loaded.CustomMap[i].Keyword != want {
			t.Errorf("custom[%d] = %q, want %q", i, loaded.CustomMap[i].Keyword, want)
		}
	}
	if len(loaded.TrendMap) != 1 || loaded.TrendMap[0].Ledger != "Salary" {
		t.Errorf("trend map = %+v", loaded.TrendMap)
	}
}

func TestStore_SaveOverwritesWholesale(t *testing.T) {
	store := NewStore(t.TempDir())
	identity := testIdentity()

	first := models.MappingSet{CustomMap: models.PairList{{Keyword: "rent", Ledger: "Rent"}}}
	if err := store.Save(identity, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := models.MappingSet{CustomMap: models.PairList{{Keyword: "fuel", Ledger: "Vehicle"}}}
	if err := store.Save(identity, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(identity)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.CustomMap) != 1 || loaded.CustomMap[0].Keyword != "fuel" {
		t.Errorf("save must replace, not merge; got %+v", loaded.CustomMap)
	}
}

func TestStore_FileNaming(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	identity := testIdentity()

	if err := store.Save(identity, models.MappingSet{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := filepath.Join(dir, "Jane_Doe_5678_mapping.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected mapping file at %s: %v", want, err)
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	identity := testIdentity()

	path := filepath.Join(dir, identity.StorageKey()+"_mapping.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load(identity)
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}
