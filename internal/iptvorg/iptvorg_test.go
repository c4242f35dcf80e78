package iptvorg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func testDB() *DB {
	db := &DB{Channels: []Channel{
		{ID: "suntv.in", Name: "Sun TV", Country: "IN",
			Languages: []string{"tam"}, Website: "https://www.suntv.in/"},
		{ID: "maatv.in", Name: "Maa TV", AltNames: []string{"Star Maa"},
			Country: "IN", Languages: []string{"tel"}, Website: "https://www.startv.com/maa"},
		{ID: "news18.in", Name: "News18", Country: "IN",
			Languages: []string{"eng", "hin"}},
		{ID: "dup1.in", Name: "Duplicate"},
		{ID: "dup2.in", Name: "Duplicate"},
	}}
	db.buildIndices()
	return db
}

func TestLookup(t *testing.T) {
	db := testDB()

	if ch := db.Lookup("SunTV.in@HD", ""); ch == nil || ch.ID != "suntv.in" {
		t.Errorf("id lookup = %+v", ch)
	}
	if ch := db.Lookup("", "Sun TV"); ch == nil || ch.ID != "suntv.in" {
		t.Errorf("name lookup = %+v", ch)
	}
	if ch := db.Lookup("", "Star Maa"); ch == nil || ch.ID != "maatv.in" {
		t.Errorf("alt-name lookup = %+v", ch)
	}
	if ch := db.Lookup("", "IN: Sun TV HD"); ch == nil || ch.ID != "suntv.in" {
		t.Errorf("stripped lookup = %+v", ch)
	}
	if ch := db.Lookup("", "Duplicate"); ch != nil {
		t.Errorf("ambiguous name matched: %+v", ch)
	}
	if ch := db.Lookup("nosuch.in", "No Such"); ch != nil {
		t.Errorf("missing channel matched: %+v", ch)
	}
}

func TestWebsiteDomain(t *testing.T) {
	db := testDB()
	if got := db.WebsiteDomain("SunTV.in@HD", ""); got != "suntv.in" {
		t.Errorf("WebsiteDomain = %q, want suntv.in", got)
	}
	if got := db.WebsiteDomain("", "Maa TV"); got != "startv.com" {
		t.Errorf("WebsiteDomain = %q, want startv.com", got)
	}
	if got := db.WebsiteDomain("news18.in", ""); got != "" {
		t.Errorf("WebsiteDomain without website = %q, want empty", got)
	}
}

func TestKnownLanguage(t *testing.T) {
	db := testDB()
	if got := db.KnownLanguage("suntv.in", ""); got != "ta" {
		t.Errorf("KnownLanguage = %q, want ta", got)
	}
	if got := db.KnownLanguage("news18.in", ""); got != "en" {
		t.Errorf("KnownLanguage = %q, want en (first supported)", got)
	}
	if got := db.KnownLanguage("nosuch.in", ""); got != "" {
		t.Errorf("KnownLanguage = %q, want empty", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := testDB()
	path := filepath.Join(t.TempDir(), "iptvorg.json")
	if err := db.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	db2, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db2.Len() != db.Len() {
		t.Fatalf("Len = %d, want %d", db2.Len(), db.Len())
	}
	if ch := db2.Lookup("suntv.in", ""); ch == nil {
		t.Error("indices not rebuilt after Load")
	}
}

func TestLoad_missingIsEmpty(t *testing.T) {
	db, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("Len = %d, want 0", db.Len())
	}
	if ch := db.Lookup("suntv.in", "Sun TV"); ch != nil {
		t.Errorf("empty DB matched: %+v", ch)
	}
}

func TestHarvest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte(`[{"id":"suntv.in","name":"Sun TV","languages":["tam"],"website":"https://www.suntv.in/"}]`))
	}))
	defer srv.Close()

	db := &DB{}
	n, err := db.Harvest(context.Background(), srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if n != 1 || db.Len() != 1 {
		t.Fatalf("n = %d, Len = %d", n, db.Len())
	}
	if got := db.KnownLanguage("SunTV.in@HD", ""); got != "ta" {
		t.Errorf("KnownLanguage after harvest = %q, want ta", got)
	}
}

func TestHarvest_badStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	db := &DB{}
	if _, err := db.Harvest(context.Background(), srv.URL, srv.Client()); err == nil {
		t.Error("Harvest on 403 = nil error")
	}
}

func TestCanonicalID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SunTV.in@HD", "suntv.in"},
		{"suntv.in", "suntv.in"},
		{"  MaaTV.in  ", "maatv.in"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := canonicalID(tc.in); got != tc.want {
			t.Errorf("canonicalID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
