package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/models"
)

func TestSaveFindDelete(t *testing.T) {
	d := New(t.TempDir())

	f := models.Freelancer{ID: "a/b", Name: "Ada", Skill: "Logo Designer", Proofs: []string{"x.jpg"}}
	if err := d.Save(f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(d.Dir(), "a-b.yml")); err != nil {
		t.Errorf("expected sanitized file name: %v", err)
	}

	got, ok := d.Find("a/b")
	if !ok {
		t.Fatal("Find: not found")
	}
	if got.Name != "Ada" || len(got.Proofs) != 1 {
		t.Errorf("unexpected freelancer %+v", got)
	}

	if err := d.Delete("a/b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := d.Find("a/b"); ok {
		t.Error("expected freelancer to be gone")
	}
	if err := d.Delete("a/b"); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestSaveRequiresIDAndName(t *testing.T) {
	d := New(t.TempDir())
	if err := d.Save(models.Freelancer{Name: "x"}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := d.Save(models.Freelancer{ID: "1"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestListSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)
	if err := d.Save(models.Freelancer{ID: "1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("::: not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	d.Invalidate()

	list, err := d.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 freelancer, got %d", len(list))
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	d := New(t.TempDir())

	n, err := d.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != len(SampleFreelancers) {
		t.Errorf("expected %d seeded, got %d", len(SampleFreelancers), n)
	}

	n, err = d.Seed()
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if n != 0 {
		t.Errorf("second seed should be a no-op, wrote %d", n)
	}
}

func TestSuggest(t *testing.T) {
	d := New(t.TempDir())
	if err := d.Save(models.Freelancer{ID: "1", Name: "Ada", Skill: "Go Developer"}); err != nil {
		t.Fatal(err)
	}

	all, err := d.Suggest("")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(all) != len(DefaultSkills)+1 {
		t.Errorf("expected %d skills, got %d", len(DefaultSkills)+1, len(all))
	}

	got, err := d.Suggest("photo")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 || got[0] != "Photoshop Editor" {
		t.Errorf("expected Photoshop Editor first, got %v", got)
	}

	got, _ = d.Suggest("go dev")
	found := false
	for _, s := range got {
		if s == "Go Developer" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected directory skill in suggestions, got %v", got)
	}
}

func TestWithSkill(t *testing.T) {
	d := New(t.TempDir())
	if _, err := d.Seed(); err != nil {
		t.Fatal(err)
	}

	got, err := d.WithSkill("react native")
	if err != nil {
		t.Fatalf("WithSkill: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 react native developers, got %d", len(got))
	}
}

func TestNearby(t *testing.T) {
	d := New(t.TempDir())
	if _, err := d.Seed(); err != nil {
		t.Fatal(err)
	}

	lagos := location.Coords{Lat: 6.5244, Lon: 3.3792}
	near, err := d.Nearby(lagos, 50)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(near) != 3 {
		t.Fatalf("expected 3 freelancers within 50km, got %d", len(near))
	}
	if near[0].ID != "1" {
		t.Errorf("expected closest to be 1, got %s", near[0].ID)
	}
	for i := 1; i < len(near); i++ {
		if near[i].DistanceKm < near[i-1].DistanceKm {
			t.Error("results are not sorted by distance")
		}
	}

	all, _ := d.Nearby(lagos, 0)
	if len(all) != len(SampleFreelancers) {
		t.Errorf("radius 0 should return everyone, got %d", len(all))
	}
}
