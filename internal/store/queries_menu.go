package store

import (
	"database/sql"
	"fmt"
)

// The menu tree is read-only and regenerated on demand, so everything in
// here is a plain aggregate query. Formatting happens in the menu package.

// OptionsEntry is one top-level menu row: either a planet or a standalone
// map, never both.
type OptionsEntry struct {
	PlanetID   sql.NullInt64
	PlanetName sql.NullString
	MapID      sql.NullInt64
	MapName    sql.NullString
}

// MapRef names one map.
type MapRef struct {
	ID   int64
	Name string
}

// ProgressSummary is the overall completion state.
type ProgressSummary struct {
	CollectedCount  int
	TotalCount      int
	CollectedPoints int
	TotalPoints     int
}

// LocationSummary is the completion state of one map or planet.
type LocationSummary struct {
	Collected int
	Total     int
	PointsPct int
}

// ItemDetail is everything the menu shows about a single item.
type ItemDetail struct {
	ID               int64
	Name             string
	Description      string
	Points           int
	NumCollected     int
	FirstCollectTime sql.NullString
}

// OptionsEntries returns the top-level menu rows in display order.
func (s *Store) OptionsEntries() ([]OptionsEntry, error) {
	var entries []OptionsEntry
	err := s.Read(func(tx *sql.Tx) error {
		rows, err := tx.Query(
			"SELECT PlanetID, PlanetName, MapID, MapName FROM OptionsList ORDER BY ID",
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e OptionsEntry
			if err := rows.Scan(&e.PlanetID, &e.PlanetName, &e.MapID, &e.MapName); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu entries: %w", err)
	}
	return entries, nil
}

// Progress returns the overall item and point completion counts.
func (s *Store) Progress() (ProgressSummary, error) {
	var p ProgressSummary
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(
			`SELECT
				COUNT(*) FILTER (WHERE NumCollected > 0),
				COUNT(*),
				IFNULL(SUM(Points) FILTER (WHERE NumCollected > 0), 0),
				SUM(Points)
			FROM CollectedItems`,
		).Scan(&p.CollectedCount, &p.TotalCount, &p.CollectedPoints, &p.TotalPoints)
	})
	if err != nil {
		return p, fmt.Errorf("failed to read progress: %w", err)
	}
	return p, nil
}

// MapSummary returns the completion state of one map.
func (s *Store) MapSummary(mapID int64) (LocationSummary, error) {
	return s.locationSummary("MapID", mapID, false)
}

// PlanetSummary returns the completion state of one planet. Items present
// on several of the planet's maps are only counted once.
func (s *Store) PlanetSummary(planetID int64) (LocationSummary, error) {
	return s.locationSummary("PlanetID", planetID, true)
}

func (s *Store) locationSummary(column string, id int64, distinct bool) (LocationSummary, error) {
	source := "CollectedLocations"
	if distinct {
		source = "(SELECT * FROM CollectedLocations GROUP BY ItemID)"
	}
	var sum LocationSummary
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(
			`SELECT
				COUNT(*) FILTER (WHERE NumCollected > 0),
				COUNT(*),
				CAST(100.0 * IFNULL(SUM(Points) FILTER (WHERE NumCollected > 0), 0)
					/ SUM(Points) AS INTEGER)
			FROM `+source+` WHERE `+column+` = ?`,
			id,
		).Scan(&sum.Collected, &sum.Total, &sum.PointsPct)
	})
	if err != nil {
		return sum, fmt.Errorf("failed to summarize %s %d: %w", column, id, err)
	}
	return sum, nil
}

// PlanetMaps returns the maps of one planet in display order.
func (s *Store) PlanetMaps(planetID int64) ([]MapRef, error) {
	var maps []MapRef
	err := s.Read(func(tx *sql.Tx) error {
		rows, err := tx.Query(
			`SELECT DISTINCT MapID, MapName FROM ItemLocations
			WHERE PlanetID = ? ORDER BY ID`,
			planetID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m MapRef
			if err := rows.Scan(&m.ID, &m.Name); err != nil {
				return err
			}
			maps = append(maps, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list maps for planet %d: %w", planetID, err)
	}
	return maps, nil
}

// MapItems returns the item ids of one map in display order.
func (s *Store) MapItems(mapID int64) ([]int64, error) {
	var ids []int64
	err := s.Read(func(tx *sql.Tx) error {
		rows, err := tx.Query(
			"SELECT ItemID FROM ItemLocations WHERE MapID = ? ORDER BY ID",
			mapID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items for map %d: %w", mapID, err)
	}
	return ids, nil
}

// ItemDetail returns one item's display state.
func (s *Store) ItemDetail(itemID int64) (ItemDetail, error) {
	var d ItemDetail
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(
			`SELECT ID, Name, Description, Points, NumCollected, FirstCollectTime
			FROM CollectedItems WHERE ID = ?`,
			itemID,
		).Scan(&d.ID, &d.Name, &d.Description, &d.Points, &d.NumCollected, &d.FirstCollectTime)
	})
	if err != nil {
		return d, fmt.Errorf("failed to read item %d: %w", itemID, err)
	}
	return d, nil
}

// PlanetName resolves a planet id for menu titles.
func (s *Store) PlanetName(planetID int64) (string, error) {
	var name string
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow("SELECT Name FROM Planets WHERE ID = ?", planetID).Scan(&name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to read planet %d: %w", planetID, err)
	}
	return name, nil
}

// MapName resolves a map id for menu titles.
func (s *Store) MapName(mapID int64) (string, error) {
	var name string
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow("SELECT Name FROM Maps WHERE ID = ?", mapID).Scan(&name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to read map %d: %w", mapID, err)
	}
	return name, nil
}

// CurrentMap looks up the menu map for a world name. Nil when the current
// world holds no tracked items.
func (s *Store) CurrentMap(worldName string) (*MapRef, error) {
	var m MapRef
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(
			"SELECT MapID, MapName FROM ItemLocations WHERE WorldName = ? LIMIT 1",
			worldName,
		).Scan(&m.ID, &m.Name)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up current map: %w", err)
	}
	return &m, nil
}
