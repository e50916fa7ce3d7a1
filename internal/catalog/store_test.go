package catalog

import "testing"

func TestEmbeddedSeedLoads(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(s.List()) != 3 {
		t.Fatalf("podcasts = %d, want 3", len(s.List()))
	}
	p, ok := s.Get("p2")
	if !ok || p.Title != "Midnight Mystery" {
		t.Errorf("Get(p2) = %+v, %v", p, ok)
	}
}

func TestSearchMatchesTitleTopicHost(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	cases := []struct {
		query string
		want  int
	}{
		{"tech", 1},       // title + topic of p1
		{"CRIME", 1},      // topic, case-insensitive
		{"zen", 1},        // host
		{"", 3},           // empty query returns all
		{"  health  ", 1}, // trimmed
		{"nothing-matches", 0},
	}
	for _, tc := range cases {
		if got := len(s.Search(tc.query)); got != tc.want {
			t.Errorf("Search(%q) = %d results, want %d", tc.query, got, tc.want)
		}
	}
}

func TestEpisodeLookup(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ep, podcast, ok := s.Episode("e3")
	if !ok {
		t.Fatal("Episode(e3) not found")
	}
	if ep.Title != "The Vanishing Key" || podcast.ID != "p2" {
		t.Errorf("episode = %+v in %s", ep, podcast.ID)
	}
	if _, _, ok := s.Episode("e999"); ok {
		t.Error("unknown episode resolved")
	}
}

func TestSeedValidation(t *testing.T) {
	if _, err := NewStoreFrom([]byte("podcasts:\n  - title: no id\n")); err == nil {
		t.Error("seed without podcast id accepted")
	}
	if _, err := NewStoreFrom([]byte("{not yaml")); err == nil {
		t.Error("malformed seed accepted")
	}
}
