package catalog

// Material is one entry in the material catalog. The ID is the stable key
// used as a column header in every ledger; the display name may change at any
// time without affecting aggregation.
type Material struct {
	ID   string
	Name string
}
