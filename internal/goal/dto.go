package goal

import (
	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/permission"
	"github.com/grupoclick/clickcheck/internal/user"
)

type CreateGoalDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	PackageID   uuid.UUID `json:"package_id"`
	TargetCount *int      `json:"target_count"`
	Month       string    `json:"month"`
}

type UpdateGoalDTO struct {
	TargetCount *int `json:"target_count"`
}

// GoalRow is a goal joined with the user and package display fields the
// progress engine and the list endpoint need.
type GoalRow struct {
	GoalID         uuid.UUID          `gorm:"column:goal_id" json:"goal_id"`
	Month          string             `json:"month"`
	TargetCount    int                `json:"target_count"`
	CreatedBy      *uuid.UUID         `json:"created_by,omitempty"`
	UserID         uuid.UUID          `json:"user_id"`
	UserEmail      string             `json:"user_email"`
	UserName       string             `json:"user_name"`
	Nickname       string             `json:"nickname"`
	ProfilePicture string             `json:"profile_picture"`
	AdminLevel     user.AdminLevel    `json:"admin_level"`
	Profile        permission.Profile `json:"profile"`
	ManagerID      *uuid.UUID         `json:"manager_id,omitempty"`
	PackageID      uuid.UUID          `json:"package_id"`
	PackageName    string             `json:"package_name"`
	PackageType    string             `json:"package_type"`
}

// GoalProgress is one goal (or one team-level package rollup) with its
// achievement for the month. GoalID is nil on rollup records.
type GoalProgress struct {
	GoalID      *uuid.UUID `json:"goal_id,omitempty"`
	PackageID   uuid.UUID  `json:"package_id"`
	PackageName string     `json:"package_name"`
	PackageType string     `json:"package_type"`
	Target      int        `json:"target"`
	Achieved    int        `json:"achieved"`
	Percentage  int        `json:"percentage"`
}

// MemberSummary is one subordinate's line on a manager card. Target is
// the member's raw total; the percentage is computed on the normalized
// target.
type MemberSummary struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Target     int       `json:"target"`
	Achieved   int       `json:"achieved"`
	Percentage int       `json:"percentage"`
}

// UserProgress is one entry of the progress ranking: either an
// individual contributor or a manager rollup. A manager with team
// members appears exactly once, as the manager entry, with their
// personal goals folded into own_goals.
type UserProgress struct {
	UserID          uuid.UUID          `json:"user_id"`
	UserEmail       string             `json:"user_email"`
	UserName        string             `json:"user_name"`
	Nickname        string             `json:"nickname"`
	ProfilePicture  string             `json:"profile_picture"`
	AdminLevel      user.AdminLevel    `json:"admin_level"`
	Profile         permission.Profile `json:"profile"`
	ManagerID       *uuid.UUID         `json:"manager_id,omitempty"`
	IsManager       bool               `json:"is_manager"`
	TeamMembers     []string           `json:"team_members"`
	TeamProgress    []MemberSummary    `json:"team_progress,omitempty"`
	Goals           []GoalProgress     `json:"goals"`
	OwnGoals        []GoalProgress     `json:"own_goals,omitempty"`
	TotalTarget     int                `json:"total_target"`
	TotalAchieved   int                `json:"total_achieved"`
	TotalPercentage int                `json:"total_percentage"`
}
