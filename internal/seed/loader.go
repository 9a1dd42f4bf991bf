package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"restaurantlisting/internal/restaurant"
)

// LoadDir читает все *.yaml / *.yml из dir в порядке имён файлов.
func LoadDir(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Item
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, f.Restaurants...)
	}
	return out, nil
}

// Apply добавляет items через сервис, только если список ресторанов пуст.
// Возвращает число добавленных записей.
func Apply(ctx context.Context, svc *restaurant.Service, items []Item, log *slog.Logger) (int, error) {
	existing, err := svc.ListRestaurants(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Info("seed.skipped", "existing", len(existing))
		return 0, nil
	}
	for i, it := range items {
		if _, err := svc.AddRestaurant(ctx, it.Dto()); err != nil {
			return i, fmt.Errorf("seed item %d (%s): %w", i, it.Name, err)
		}
	}
	log.Info("seed.applied", "count", len(items))
	return len(items), nil
}
