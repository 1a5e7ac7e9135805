package domain

// CatalogItem is a purchasable menu item as served by the backend catalog.
// The client treats it as read-only; price and name are snapshotted into the
// cart at add-time.
type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
}

// Validate rejects snapshots that can never form a legal cart line.
func (i CatalogItem) Validate() error {
	if i.ID == "" || i.Price < 0 {
		return ErrInvalidInput
	}
	return nil
}

// MenuCategory groups catalog items for browsing.
type MenuCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
