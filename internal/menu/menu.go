package menu

import (
	"fmt"
	"log"
	"strings"

	"github.com/vexbolts/hunt-tracker/internal/store"
)

const (
	checkedMarker   = "[x]"
	uncheckedMarker = "[ ]"
)

// Node is one entry of the read-only progress display tree. The host shim
// renders nodes however its options widgets allow; we only provide text.
type Node struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// PlanetID/MapID are set on nodes whose children are fetched through
	// their own endpoint instead of being inlined.
	PlanetID int64  `json:"planet_id,omitempty"`
	MapID    int64  `json:"map_id,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Menu generates display trees from live store queries. Every generator
// degrades to an inline failure node rather than erroring the whole tree,
// so one bad query never takes the menu down.
type Menu struct {
	store *store.Store
	log   *log.Logger
}

func New(st *store.Store, logger *log.Logger) *Menu {
	return &Menu{store: st, log: logger}
}

// Root builds the top level: progression summary, token overview, the
// current map when it holds tracked items, and the planet/map list.
func (m *Menu) Root(worldName string) []Node {
	nodes := []Node{m.progressNode(), m.tokensNode()}

	if worldName != "" {
		current, err := m.store.CurrentMap(worldName)
		if err != nil {
			nodes = append(nodes, m.failNode(err))
		} else if current != nil {
			nodes = append(nodes, Node{
				Title:    "Current Map",
				Children: []Node{{Title: current.Name, MapID: current.ID}},
			})
		}
	}

	entries, err := m.store.OptionsEntries()
	if err != nil {
		return append(nodes, m.failNode(err))
	}

	items := Node{Title: "Items"}
	for _, entry := range entries {
		switch {
		case entry.PlanetID.Valid:
			items.Children = append(items.Children, Node{
				Title:    entry.PlanetName.String,
				PlanetID: entry.PlanetID.Int64,
			})
		case entry.MapID.Valid:
			items.Children = append(items.Children, Node{
				Title: entry.MapName.String,
				MapID: entry.MapID.Int64,
			})
		}
	}
	return append(nodes, items)
}

// Planet builds one planet's node: an overall total, a per-map breakdown
// in the description, and the map list as children.
func (m *Menu) Planet(planetID int64) Node {
	name, err := m.store.PlanetName(planetID)
	if err != nil {
		return m.failNode(err)
	}
	summary, err := m.store.PlanetSummary(planetID)
	if err != nil {
		return m.failNode(err)
	}
	maps, err := m.store.PlanetMaps(planetID)
	if err != nil {
		return m.failNode(err)
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Total: %d/%d (%d%%)\n", summary.Collected, summary.Total, summary.PointsPct)

	node := Node{Title: name}
	for _, mp := range maps {
		mapSummary, err := m.store.MapSummary(mp.ID)
		if err != nil {
			node.Children = append(node.Children, m.failNode(err))
			continue
		}
		fmt.Fprintf(&desc, "\n%s: %d/%d (%d%%)",
			mp.Name, mapSummary.Collected, mapSummary.Total, mapSummary.PointsPct)
		node.Children = append(node.Children, Node{Title: mp.Name, MapID: mp.ID})
	}
	node.Description = desc.String()
	return node
}

// Map builds one map's node with a per-item checklist.
func (m *Menu) Map(mapID int64) Node {
	name, err := m.store.MapName(mapID)
	if err != nil {
		return m.failNode(err)
	}
	summary, err := m.store.MapSummary(mapID)
	if err != nil {
		return m.failNode(err)
	}
	itemIDs, err := m.store.MapItems(mapID)
	if err != nil {
		return m.failNode(err)
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Total: %d/%d (%d%%)\n", summary.Collected, summary.Total, summary.PointsPct)

	node := Node{Title: name, MapID: mapID}
	for _, itemID := range itemIDs {
		item := m.Item(itemID)
		fmt.Fprintf(&desc, "\n%s", item.Title)
		node.Children = append(node.Children, item)
	}
	node.Description = desc.String()
	return node
}

// Item builds one item's node: a checklist marker in the title, and the
// collection history ahead of the catalog description.
func (m *Menu) Item(itemID int64) Node {
	detail, err := m.store.ItemDetail(itemID)
	if err != nil {
		return m.failNode(err)
	}

	marker := uncheckedMarker
	if detail.NumCollected > 0 {
		marker = checkedMarker
	}

	desc := detail.Description
	switch {
	case detail.NumCollected == 1:
		desc = fmt.Sprintf("Collected %s\n\n%s", detail.FirstCollectTime.String, desc)
	case detail.NumCollected > 1:
		desc = fmt.Sprintf("Collected %d times, first at %s\n\n%s",
			detail.NumCollected, detail.FirstCollectTime.String, desc)
	}

	return Node{
		Title:       fmt.Sprintf("%s %s", marker, detail.Name),
		Description: desc,
	}
}

func (m *Menu) progressNode() Node {
	progress, err := m.store.Progress()
	if err != nil {
		return m.failNode(err)
	}

	node := Node{Title: "Progression"}
	node.Children = append(node.Children,
		Node{
			Title: fmt.Sprintf("Items: %d/%d", progress.CollectedCount, progress.TotalCount),
			Description: fmt.Sprintf("%.1f%% of all items collected.",
				percent(progress.CollectedCount, progress.TotalCount)),
		},
		Node{
			Title: fmt.Sprintf("Points: %d/%d", progress.CollectedPoints, progress.TotalPoints),
			Description: fmt.Sprintf("%.1f%% of all points collected.",
				percent(progress.CollectedPoints, progress.TotalPoints)),
		},
	)
	return node
}

func (m *Menu) tokensNode() Node {
	tokens, err := m.store.AvailableTokens()
	if err != nil {
		return m.failNode(err)
	}
	return Node{
		Title: "World Drop Tokens",
		Children: []Node{{
			Title: fmt.Sprintf("Available Tokens: %d", tokens),
			Description: "While inspecting an item, you can spend World Drop Tokens to " +
				"redeem items you got as a world drop (or from any other source not " +
				"normally allowed).\n\nYou initially have one token, and earn more by " +
				"completing the main campaign missions. Subsequent completions are " +
				"worth more.",
		}},
	}
}

func (m *Menu) failNode(err error) Node {
	m.log.Printf("failed to generate menu node: %v", err)
	return Node{
		Title:       "Failed to generate description!",
		Description: err.Error(),
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
