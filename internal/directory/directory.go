package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultSkills seeds skill search before any freelancer files exist.
var DefaultSkills = []string{
	"Graphic Designer",
	"Photoshop Editor",
	"JavaScript Developer",
	"React Native Developer",
	"Motion Graphics Artist",
	"UI/UX Designer",
	"Full Stack Developer",
	"Frontend Engineer",
	"Logo Designer",
	"Web Developer",
}

// Directory stores freelancer profiles as YAML files, one per freelancer.
// Reads are cached for the configured TTL.
type Directory struct {
	dir string
	ttl time.Duration

	mu       sync.RWMutex
	cache    []models.Freelancer
	byID     map[string]models.Freelancer
	cachedAt time.Time
}

func New(dir string) *Directory {
	return &Directory{dir: dir, ttl: 30 * time.Second}
}

func (d *Directory) Dir() string {
	return d.dir
}

func (d *Directory) ensureDir() error {
	return os.MkdirAll(d.dir, 0755)
}

// sanitizeFilename converts a freelancer id to a safe filename.
func sanitizeFilename(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "/", "-")
	id = strings.ReplaceAll(id, "\\", "-")
	id = strings.ReplaceAll(id, ":", "-")
	return id
}

func (d *Directory) filePath(id string) string {
	return filepath.Join(d.dir, sanitizeFilename(id)+".yml")
}

// Save writes a freelancer to <dir>/<id>.yml.
func (d *Directory) Save(f models.Freelancer) error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("freelancer id cannot be empty")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("freelancer name cannot be empty")
	}

	if err := d.ensureDir(); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to marshal freelancer: %w", err)
	}

	if err := os.WriteFile(d.filePath(f.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write freelancer file: %w", err)
	}

	d.Invalidate()
	return nil
}

// Delete removes a freelancer's YAML file.
func (d *Directory) Delete(id string) error {
	if err := os.Remove(d.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("freelancer not found: %s", id)
		}
		return fmt.Errorf("failed to delete freelancer: %w", err)
	}

	d.Invalidate()
	return nil
}

// List returns every freelancer sorted by id. Unreadable files are skipped.
func (d *Directory) List() ([]models.Freelancer, error) {
	d.mu.RLock()
	if time.Since(d.cachedAt) < d.ttl && d.cache != nil {
		defer d.mu.RUnlock()
		return d.cache, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if time.Since(d.cachedAt) < d.ttl && d.cache != nil {
		return d.cache, nil
	}

	if err := d.ensureDir(); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	freelancers := []models.Freelancer{}
	byID := make(map[string]models.Freelancer)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(d.dir, entry.Name()))
		if err != nil {
			continue
		}

		var f models.Freelancer
		if err := yaml.Unmarshal(data, &f); err != nil || f.ID == "" {
			continue
		}

		freelancers = append(freelancers, f)
		byID[f.ID] = f
	}

	sort.Slice(freelancers, func(i, j int) bool {
		return freelancers[i].ID < freelancers[j].ID
	})

	d.cache = freelancers
	d.byID = byID
	d.cachedAt = time.Now()

	return freelancers, nil
}

// Invalidate forces the next read to go to disk.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cachedAt = time.Time{}
}

// Find looks a freelancer up by id.
func (d *Directory) Find(id string) (models.Freelancer, bool) {
	if id == "" {
		return models.Freelancer{}, false
	}

	if _, err := d.List(); err != nil {
		return models.Freelancer{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	f, ok := d.byID[id]
	return f, ok
}

// Skills returns the distinct skills offered, merged with DefaultSkills.
func (d *Directory) Skills() ([]string, error) {
	freelancers, err := d.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	skills := []string{}
	add := func(s string) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, s)
	}

	for _, s := range DefaultSkills {
		add(s)
	}
	for _, f := range freelancers {
		add(f.Skill)
	}

	return skills, nil
}

// Suggest ranks skills against a query. An empty query returns every skill.
func (d *Directory) Suggest(query string) ([]string, error) {
	skills, err := d.Skills()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return skills, nil
	}

	matches := fuzzy.Find(query, skills)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out, nil
}

// WithSkill filters freelancers whose skill contains the given text, case-insensitively.
func (d *Directory) WithSkill(skill string) ([]models.Freelancer, error) {
	freelancers, err := d.List()
	if err != nil {
		return nil, err
	}

	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return freelancers, nil
	}

	out := []models.Freelancer{}
	for _, f := range freelancers {
		if strings.Contains(strings.ToLower(f.Skill), skill) {
			out = append(out, f)
		}
	}
	return out, nil
}

// NearbyFreelancer is a freelancer with its distance from the viewer.
type NearbyFreelancer struct {
	models.Freelancer
	DistanceKm float64
}

// Nearby returns freelancers within radiusKm of from, closest first.
// A radius of zero or less returns everyone.
func (d *Directory) Nearby(from location.Coords, radiusKm float64) ([]NearbyFreelancer, error) {
	freelancers, err := d.List()
	if err != nil {
		return nil, err
	}

	out := []NearbyFreelancer{}
	for _, f := range freelancers {
		dist := location.Distance(from, f.Position)
		if radiusKm > 0 && dist > radiusKm {
			continue
		}
		out = append(out, NearbyFreelancer{Freelancer: f, DistanceKm: dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}
