// Package permission holds the single authoritative mapping from access
// profiles to capability sets. Per-user overrides stored as JSON take
// precedence over the profile defaults; admins always get the full set.
package permission

import "encoding/json"

type Profile string

const (
	ProfileValidator Profile = "validator"
	ProfileRequester Profile = "requester"
	ProfileManager   Profile = "manager"
	ProfileAdmin     Profile = "admin"
)

var AllProfiles = []Profile{
	ProfileValidator,
	ProfileRequester,
	ProfileManager,
	ProfileAdmin,
}

func (p Profile) IsValid() bool {
	for _, v := range AllProfiles {
		if p == v {
			return true
		}
	}
	return false
}

type Set struct {
	ViewDashboard      bool `json:"view_dashboard"`
	CreateValidation   bool `json:"create_validation"`
	ViewAssigned       bool `json:"view_assigned"`
	ViewAllValidations bool `json:"view_all_validations"`
	Validate           bool `json:"validate"`
	ViewRanking        bool `json:"view_ranking"`
	ViewReports        bool `json:"view_reports"`
	ManagePackages     bool `json:"manage_packages"`
	ManageUsers        bool `json:"manage_users"`
	EditValidation     bool `json:"edit_validation"`
	DeleteValidation   bool `json:"delete_validation"`
	ViewWiki           bool `json:"view_wiki"`
}

var profileSets = map[Profile]Set{
	ProfileValidator: {
		ViewDashboard: true,
		ViewAssigned:  true,
		Validate:      true,
		ViewRanking:   true,
		ViewWiki:      true,
	},
	ProfileRequester: {
		ViewDashboard:      true,
		CreateValidation:   true,
		ViewAllValidations: true,
		ViewRanking:        true,
		ViewWiki:           true,
	},
	ProfileManager: {
		ViewDashboard:      true,
		CreateValidation:   true,
		ViewAssigned:       true,
		ViewAllValidations: true,
		Validate:           true,
		ViewRanking:        true,
		ViewReports:        true,
		ManagePackages:     true,
		EditValidation:     true,
		DeleteValidation:   true,
		ViewWiki:           true,
	},
	ProfileAdmin: {
		ViewDashboard:      true,
		CreateValidation:   true,
		ViewAssigned:       true,
		ViewAllValidations: true,
		Validate:           true,
		ViewRanking:        true,
		ViewReports:        true,
		ManagePackages:     true,
		ManageUsers:        true,
		EditValidation:     true,
		DeleteValidation:   true,
		ViewWiki:           true,
	},
}

func ForProfile(p Profile) Set {
	if set, ok := profileSets[p]; ok {
		return set
	}
	return profileSets[ProfileValidator]
}

// Resolve computes the effective capability set for a user. Resolution
// order: admin level, custom JSON permissions, profile default.
func Resolve(isAdmin bool, custom []byte, profile Profile) Set {
	if isAdmin {
		return profileSets[ProfileAdmin]
	}

	if len(custom) > 0 {
		var set Set
		if err := json.Unmarshal(custom, &set); err == nil {
			return set
		}
	}

	return ForProfile(profile)
}
