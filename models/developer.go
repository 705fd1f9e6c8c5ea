package models

// Developer is a row of the developers table. DeveloperInfoID links the
// optional DeveloperInfo owned by this developer.
type Developer struct {
	ID              int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name            string `json:"name" db:"name" gorm:"column:name;type:varchar(50);not null"`
	Email           string `json:"email" db:"email" gorm:"column:email;type:varchar(50);not null;unique"`
	DeveloperInfoID *int64 `json:"developerInfoId,omitempty" db:"developerInfoId" gorm:"column:developerInfoId;unique"`
}

func (Developer) TableName() string {
	return "developers"
}

// DeveloperWithInfo is a developer left-joined with its info. Info fields
// are nil when the developer has no info yet.
type DeveloperWithInfo struct {
	DeveloperID                 int64  `json:"developerId" gorm:"column:developerId"`
	DeveloperName               string `json:"developerName" gorm:"column:developerName"`
	DeveloperEmail              string `json:"developerEmail" gorm:"column:developerEmail"`
	DeveloperInfoID             *int64 `json:"developerInfoId" gorm:"column:developerInfoId"`
	DeveloperInfoDeveloperSince *Date  `json:"developerInfoDeveloperSince" gorm:"column:developerInfoDeveloperSince"`
	DeveloperInfoPreferredOS    *OS    `json:"developerInfoPreferredOS" gorm:"column:developerInfoPreferredOS"`
}

// DeveloperKeys is the schema of a developer payload, in the order clients see it.
var DeveloperKeys = []string{"name", "email"}

// NewDeveloper is the body of a create-developer request.
type NewDeveloper struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (n NewDeveloper) ToModel() Developer {
	return Developer{Name: n.Name, Email: n.Email}
}
