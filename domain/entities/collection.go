package entities

// CollectionEntry is the number of copies a user owns of one item
type CollectionEntry struct {
	GuildID   int64  `db:"guild_id"`
	DiscordID int64  `db:"discord_id"`
	ItemName  string `db:"item_name"`
	Copies    int    `db:"copies"`
}

// InventoryLine pairs a collection entry with its item for the inventory view.
type InventoryLine struct {
	Item   *Item
	Copies int
}

// Completed reports whether the copy count has reached the item's threshold.
func (l InventoryLine) Completed() bool {
	return l.Item.HasThreshold() && l.Copies >= *l.Item.CollectableThreshold
}

// Progress returns the fraction of the threshold reached, capped at 1.
func (l InventoryLine) Progress() float64 {
	if !l.Item.HasThreshold() {
		return 0
	}
	p := float64(l.Copies) / float64(*l.Item.CollectableThreshold)
	if p > 1 {
		return 1
	}
	return p
}
