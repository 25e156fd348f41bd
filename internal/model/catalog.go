package model

import "github.com/google/uuid"

// Item is one card in the grid.
type Item struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle"`
	EstimatedHeight float64 `json:"estimated_height,omitempty"` // 0 = use the layout default
}

func NewItem(title, subtitle string) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Title:    title,
		Subtitle: subtitle,
	}
}

// Group is an ordered run of items. Groups are laid out one after another in
// a single flattened index space.
type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

func NewGroup(title string, items ...Item) Group {
	if items == nil {
		items = []Item{}
	}
	return Group{
		ID:    uuid.New().String()[:8],
		Title: title,
		Items: items,
	}
}

// Catalog is the item source for a grid.
type Catalog struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

func NewCatalog(name string) Catalog {
	return Catalog{Name: name, Groups: []Group{}}
}

// GroupCount returns the number of groups.
func (c Catalog) GroupCount() int {
	return len(c.Groups)
}

// ItemCount returns the number of items in group g, or 0 when g is out of range.
func (c Catalog) ItemCount(g int) int {
	if g < 0 || g >= len(c.Groups) {
		return 0
	}
	return len(c.Groups[g].Items)
}

// Len returns the total number of items across all groups.
func (c Catalog) Len() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Items)
	}
	return n
}

// Item returns the item at path.
func (c Catalog) Item(path IndexPath) (Item, bool) {
	if path.Group < 0 || path.Group >= len(c.Groups) {
		return Item{}, false
	}
	items := c.Groups[path.Group].Items
	if path.Item < 0 || path.Item >= len(items) {
		return Item{}, false
	}
	return items[path.Item], true
}

// ItemAt returns the item at a flattened index.
func (c Catalog) ItemAt(index int) (Item, bool) {
	if index < 0 {
		return Item{}, false
	}
	for _, g := range c.Groups {
		if index < len(g.Items) {
			return g.Items[index], true
		}
		index -= len(g.Items)
	}
	return Item{}, false
}

// Estimate returns the item's own height hint, if it has one.
func (c Catalog) Estimate(path IndexPath) (float64, bool) {
	it, ok := c.Item(path)
	if !ok || it.EstimatedHeight <= 0 {
		return 0, false
	}
	return it.EstimatedHeight, true
}

// Demo recipe titles, picked by index the way the demo list does.
const (
	demoShortTitle  = "Mac and cheese"
	demoMediumTitle = "Baked Beef Meatballs With Tomato Sauce & Linguine"
	demoLongTitle   = "Duck Breast, Sweet Potato Purée, Pomegranate Sauce & Roast Tenderstem"
	demoSubtitle    = "50 mins"
	demoItemCount   = 21
)

// DemoTitle returns the demo recipe title for row i.
func DemoTitle(i int) string {
	switch {
	case i%2 == 0:
		return demoShortTitle
	case i%3 == 0:
		return demoMediumTitle
	default:
		return demoLongTitle
	}
}

// DemoCatalog returns a single group of 21 recipes.
func DemoCatalog() Catalog {
	items := make([]Item, 0, demoItemCount)
	for i := 0; i < demoItemCount; i++ {
		items = append(items, NewItem(DemoTitle(i), demoSubtitle))
	}
	c := NewCatalog("Recipes")
	c.Groups = append(c.Groups, NewGroup("Recipes", items...))
	return c
}
