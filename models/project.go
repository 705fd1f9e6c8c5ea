package models

// Project represents a project owned by a single developer
type Project struct {
	ID            int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name          string `json:"name" db:"name" gorm:"column:name;type:varchar(50);not null"`
	Description   string `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	EstimatedTime string `json:"estimatedTime" db:"estimatedTime" gorm:"column:estimatedTime;type:varchar(20);not null"`
	Repository    string `json:"repository" db:"repository" gorm:"column:repository;type:varchar(120);not null"`
	StartDate     Date   `json:"startDate" db:"startDate" gorm:"column:startDate;not null"`
	EndDate       *Date  `json:"endDate" db:"endDate" gorm:"column:endDate"`
	DeveloperID   int64  `json:"developerId" db:"developerId" gorm:"column:developerId;not null;index"`

	Technologies []ProjectTechnologyDetail `json:"technologies,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectRequiredKeys must all be present when creating a project; endDate is optional.
var ProjectRequiredKeys = []string{"name", "description", "estimatedTime", "repository", "startDate", "developerId"}

// ProjectKeys is every key a project payload may carry.
var ProjectKeys = []string{"name", "description", "estimatedTime", "repository", "startDate", "endDate", "developerId"}

// NewProject is the body of a create-project request.
type NewProject struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EstimatedTime string  `json:"estimatedTime"`
	Repository    string  `json:"repository"`
	StartDate     string  `json:"startDate"`
	EndDate       *string `json:"endDate"`
	DeveloperID   int64   `json:"developerId"`
}

func (n NewProject) ToModel() (Project, error) {
	start, err := ParseDate(n.StartDate)
	if err != nil {
		return Project{}, err
	}
	project := Project{
		Name:          n.Name,
		Description:   n.Description,
		EstimatedTime: n.EstimatedTime,
		Repository:    n.Repository,
		StartDate:     start,
		DeveloperID:   n.DeveloperID,
	}
	if n.EndDate != nil {
		end, err := ParseDate(*n.EndDate)
		if err != nil {
			return Project{}, err
		}
		project.EndDate = &end
	}
	return project, nil
}
