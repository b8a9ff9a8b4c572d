package commands

// LoadMemosCommand replaces the working set with the store contents
type LoadMemosCommand struct{}

// Validate validates the LoadMemosCommand
func (c LoadMemosCommand) Validate() error {
	return nil
}

// LoadMemosResult reports the outcome of a load
type LoadMemosResult struct {
	Count      int `json:"count"`
	Categories int `json:"categories"`
}
