package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteContentID keys the single content row. The whole document is always
// read and written as one unit.
const SiteContentID = "main"

type SiteContent struct {
	ID string `gorm:"type:varchar(32);primaryKey" json:"id"`

	Profile  datatypes.JSON `json:"profile"`
	Skills   datatypes.JSON `json:"skills"`
	Projects datatypes.JSON `json:"projects"`
	Settings datatypes.JSON `json:"settings"`

	UpdatedAt time.Time `json:"updated_at"`
}
