package models

// Technology belongs to a fixed reference set seeded outside the API.
type Technology struct {
	ID   int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name string `json:"technologyName" db:"technologyName" gorm:"column:technologyName;type:varchar(30);not null;unique"`
}

func (Technology) TableName() string {
	return "technologies"
}

// ProjectTechnology is the join row between a project and a technology.
type ProjectTechnology struct {
	ProjectID    int64 `json:"projectId" db:"projectId" gorm:"column:projectId;primaryKey;autoIncrement:false"`
	TechnologyID int64 `json:"technologyId" db:"technologyId" gorm:"column:technologyId;primaryKey;autoIncrement:false;index"`
	AddedIn      Date  `json:"addedIn" db:"addedIn" gorm:"column:addedIn;not null"`
}

func (ProjectTechnology) TableName() string {
	return "projects_technologies"
}

// ProjectTechnologyDetail is a technology attached to a project, as listed
// alongside the project.
type ProjectTechnologyDetail struct {
	TechnologyID   int64  `json:"technologyId" gorm:"column:technologyId"`
	TechnologyName string `json:"technologyName" gorm:"column:technologyName"`
	AddedIn        Date   `json:"addedIn" gorm:"column:addedIn"`
}

// TechnologyKeys is the body of an attach-technology request.
var TechnologyKeys = []string{"name"}

type AttachTechnology struct {
	Name string `json:"name"`
}
