package settings

import (
	"time"
)

// AppSettings is the single display-configuration row. Purely cosmetic; it
// never influences engine behavior.
type AppSettings struct {
	CompanyName  string
	PrimaryColor string
	UpdatedAt    time.Time
}

// Defaults returned when the row has never been saved.
func Defaults() AppSettings {
	return AppSettings{
		CompanyName:  "VTC Employee",
		PrimaryColor: "#3B82F6",
	}
}
