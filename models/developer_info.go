package models

import "slices"

// OS is a developer's preferred operating system.
type OS string

const (
	OSWindows OS = "Windows"
	OSLinux   OS = "Linux"
	OSMacOS   OS = "MacOS"
)

// OSValues lists the accepted OS values in the order they are reported to clients.
var OSValues = []string{string(OSWindows), string(OSLinux), string(OSMacOS)}

func (o OS) Valid() bool {
	return slices.Contains(OSValues, string(o))
}

// DeveloperInfo is a row of the developer_infos table.
type DeveloperInfo struct {
	ID             int64 `json:"id" db:"id" gorm:"column:id;primaryKey"`
	DeveloperSince Date  `json:"developerSince" db:"developerSince" gorm:"column:developerSince;not null"`
	PreferredOS    OS    `json:"preferredOS" db:"preferredOS" gorm:"column:preferredOS;type:varchar(10);not null"`
}

func (DeveloperInfo) TableName() string {
	return "developer_infos"
}

var DeveloperInfoKeys = []string{"developerSince", "preferredOS"}

// NewDeveloperInfo is the body of a create-developer-info request.
type NewDeveloperInfo struct {
	DeveloperSince string `json:"developerSince"`
	PreferredOS    OS     `json:"preferredOS"`
}

func (n NewDeveloperInfo) ToModel() (DeveloperInfo, error) {
	since, err := ParseDate(n.DeveloperSince)
	if err != nil {
		return DeveloperInfo{}, err
	}
	return DeveloperInfo{DeveloperSince: since, PreferredOS: n.PreferredOS}, nil
}
