package models

// Species is a reference entry looked up by its USDA-style symbol code.
type Species struct {
	ID             int64
	Symbol         string
	ScientificName string
	CommonName     string
}
