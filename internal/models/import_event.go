package models

import "time"

// SiteAddImportKey tags every tree created through the web entry form.
const SiteAddImportKey = "site_add"

// ImportEvent groups tree records created through one entry path or import file.
type ImportEvent struct {
	ID         int64
	FileName   string
	ImportedOn time.Time
}
