package models

import "time"

// Site is a location devices can be assigned to
type Site struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteName    string    `gorm:"not null;uniqueIndex" json:"site_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Site) TableName() string { return "sites" }

// SiteCreate is the request body accepted when adding a site.
type SiteCreate struct {
	SiteName    string `json:"site_name" binding:"required,min=2"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (s SiteCreate) ToModel() Site {
	return Site{
		SiteName:    s.SiteName,
		Location:    s.Location,
		Description: s.Description,
	}
}

// SitePatch holds the updatable site columns. A nil field is left untouched.
type SitePatch struct {
	SiteName    *string `json:"site_name" binding:"omitempty,min=2"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

func (p SitePatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.SiteName != nil {
		cols["site_name"] = *p.SiteName
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	return cols
}
