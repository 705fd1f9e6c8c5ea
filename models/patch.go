package models

import "fmt"

// Patch structs hold one optional field per updatable column. Columns maps
// only the fields present in the request to their column names, so an
// UPDATE never touches a column the client did not send and can never name
// a column outside the entity.

type DeveloperPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (p DeveloperPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	return cols
}

type DeveloperInfoPatch struct {
	DeveloperSince *string `json:"developerSince"`
	PreferredOS    *OS     `json:"preferredOS"`
}

func (p DeveloperInfoPatch) Columns() (map[string]any, error) {
	cols := map[string]any{}
	if p.DeveloperSince != nil {
		since, err := ParseDate(*p.DeveloperSince)
		if err != nil {
			return nil, err
		}
		cols["developerSince"] = since
	}
	if p.PreferredOS != nil {
		if !p.PreferredOS.Valid() {
			return nil, fmt.Errorf("unsupported preferredOS %q", *p.PreferredOS)
		}
		cols["preferredOS"] = string(*p.PreferredOS)
	}
	return cols, nil
}

type ProjectPatch struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	EstimatedTime *string `json:"estimatedTime"`
	Repository    *string `json:"repository"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	DeveloperID   *int64  `json:"developerId"`

	// ClearEndDate is set when the request sent "endDate": null.
	ClearEndDate bool `json:"-"`
}

func (p ProjectPatch) Columns() (map[string]any, error) {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.EstimatedTime != nil {
		cols["estimatedTime"] = *p.EstimatedTime
	}
	if p.Repository != nil {
		cols["repository"] = *p.Repository
	}
	if p.StartDate != nil {
		start, err := ParseDate(*p.StartDate)
		if err != nil {
			return nil, err
		}
		cols["startDate"] = start
	}
	if p.EndDate != nil {
		end, err := ParseDate(*p.EndDate)
		if err != nil {
			return nil, err
		}
		cols["endDate"] = end
	} else if p.ClearEndDate {
		cols["endDate"] = nil
	}
	if p.DeveloperID != nil {
		cols["developerId"] = *p.DeveloperID
	}
	return cols, nil
}
