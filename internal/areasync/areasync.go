// Package areasync creates inventory locations for host areas that the
// inventory server does not know yet. It never deletes or renames.
package areasync

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/HomeboxBridge_Go/internal/config"
	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// LocationClient is the part of the inventory client used by Sync
type LocationClient interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, name string) bool
}

// AreaProvider supplies the host platform's area names
type AreaProvider interface {
	Areas(ctx context.Context) ([]string, error)
}

// StaticAreas is a fixed list of area names, typically from HOST_AREAS
type StaticAreas []string

// Areas implements AreaProvider
func (s StaticAreas) Areas(_ context.Context) ([]string, error) {
	return []string(s), nil
}

// FileAreas reads area names from a YAML file on every call so edits are
// picked up by the next sync without a restart.
type FileAreas struct {
	Path string
}

// Areas implements AreaProvider
func (f FileAreas) Areas(_ context.Context) ([]string, error) {
	return config.LoadAreasFile(f.Path)
}

// Missing returns the area names that have no location of the same name, sorted.
func Missing(areas []string, locations []domain.Location) []string {
	existing := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		existing[loc.Name()] = struct{}{}
	}

	seen := make(map[string]struct{}, len(areas))
	var missing []string
	for _, area := range areas {
		area = strings.TrimSpace(area)
		if area == "" {
			continue
		}
		if _, ok := existing[area]; ok {
			continue
		}
		if _, ok := seen[area]; ok {
			continue
		}
		seen[area] = struct{}{}
		missing = append(missing, area)
	}
	sort.Strings(missing)
	return missing
}

// Sync creates a location for every host area missing on the server and
// returns how many were created. Server locations are read strictly so an
// outage is reported instead of being mistaken for an empty server. A nil
// error means every missing area now exists.
func Sync(ctx context.Context, provider AreaProvider, client LocationClient) (int, error) {
	log := logger.FromContext(ctx)

	areas, err := provider.Areas(ctx)
	if err != nil {
		log.Warn(LogMsgAreasUnavailable, "error", err)
		return 0, fmt.Errorf("%w: read host areas: %v", domain.ErrOperationFailed, err)
	}

	locations, err := client.ListLocations(ctx)
	if err != nil {
		log.Warn(LogMsgLocationsFailed, "error", err)
		return 0, fmt.Errorf("list locations: %w", err)
	}

	missing := Missing(areas, locations)
	if len(missing) == 0 {
		log.Debug(LogMsgSyncNothingToDo, "areas", len(areas))
		return 0, nil
	}

	log.Info(LogMsgSyncStarted, "missing", len(missing))

	created := 0
	var failed []string
	for _, name := range missing {
		if client.CreateLocation(ctx, name) {
			created++
			continue
		}
		log.Warn(LogMsgSyncCreateFailed, "area", name)
		failed = append(failed, name)
	}

	log.Info(LogMsgSyncCompleted, "created", created, "failed", len(failed))

	if len(failed) > 0 {
		return created, fmt.Errorf("%w: could not create locations: %s", domain.ErrOperationFailed, strings.Join(failed, ", "))
	}
	return created, nil
}
