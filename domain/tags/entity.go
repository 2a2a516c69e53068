package tags

// TagDTO is one tag with its usage count and the entity types it
// appears on.
type TagDTO struct {
	Tag         string   `json:"tag"`
	Count       int      `json:"count"`
	EntityTypes []string `json:"entity_types"`
}
