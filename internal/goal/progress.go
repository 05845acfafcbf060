package goal

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/request"
)

// progressKey joins goal rows to achievement counts: requests carry the
// requester's email, goals carry the user id, so the email is the
// bridge. Emails are lowercased on both sides before keying.
type progressKey struct {
	Email     string
	PackageID uuid.UUID
}

type achievedTotals struct {
	Approved  int
	Submitted int
}

// CountsIndex folds the raw per-(requester, package) sums into a lookup
// map keyed case-insensitively by email.
func CountsIndex(counts []request.AchievedCount) map[progressKey]achievedTotals {
	idx := make(map[progressKey]achievedTotals, len(counts))
	for _, c := range counts {
		key := progressKey{Email: strings.ToLower(c.RequestedBy), PackageID: c.PackageID}
		t := idx[key]
		t.Approved += c.Approved
		t.Submitted += c.Submitted
		idx[key] = t
	}
	return idx
}

// percentage rounds achieved/target to the nearest whole percent. A
// zero target yields zero; callers normalize targets first where the
// zero-target rule applies.
func percentage(achieved, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(achieved) / float64(target) * 100))
}

// normalizeTarget applies the zero-target rule: work achieved against a
// zero target counts as 100%, so the target snaps to the achieved
// count. The rule applies independently at goal, team-package and
// entry-total level.
func normalizeTarget(target, achieved int) int {
	if target == 0 && achieved > 0 {
		return achieved
	}
	return target
}

// BuildProgress turns the month's goal rows and achievement counts into
// the ranked progress entries. Managers with at least one resolved team
// member collapse their team into a single rollup entry that replaces
// their individual one; everyone else appears as an individual.
func BuildProgress(rows []GoalRow, counts map[progressKey]achievedTotals, dir *Directory, res *Resolver) []*UserProgress {
	entries := make(map[uuid.UUID]*UserProgress)
	order := []uuid.UUID{}

	for _, row := range rows {
		entry, ok := entries[row.UserID]
		if !ok {
			entry = &UserProgress{
				UserID:         row.UserID,
				UserEmail:      row.UserEmail,
				UserName:       row.UserName,
				Nickname:       row.Nickname,
				ProfilePicture: row.ProfilePicture,
				AdminLevel:     row.AdminLevel,
				Profile:        row.Profile,
				ManagerID:      row.ManagerID,
				TeamMembers:    []string{},
				Goals:          []GoalProgress{},
			}
			entries[row.UserID] = entry
			order = append(order, row.UserID)
		}

		achieved := counts[progressKey{Email: strings.ToLower(row.UserEmail), PackageID: row.PackageID}]
		target := normalizeTarget(row.TargetCount, achieved.Approved)

		goalID := row.GoalID
		entry.Goals = append(entry.Goals, GoalProgress{
			GoalID:      &goalID,
			PackageID:   row.PackageID,
			PackageName: row.PackageName,
			PackageType: row.PackageType,
			Target:      target,
			Achieved:    achieved.Approved,
			Percentage:  percentage(achieved.Approved, target),
		})
		entry.TotalTarget += target
		entry.TotalAchieved += achieved.Approved
	}

	managers := buildManagerEntries(entries, dir, res)

	suppressed := make(map[uuid.UUID]bool, len(managers))
	for _, m := range managers {
		suppressed[m.UserID] = true
	}

	result := make([]*UserProgress, 0, len(order)+len(managers))
	for _, id := range order {
		if suppressed[id] {
			continue
		}
		result = append(result, entries[id])
	}
	result = append(result, managers...)

	for _, entry := range result {
		entry.TotalTarget = normalizeTarget(entry.TotalTarget, entry.TotalAchieved)
		entry.TotalPercentage = percentage(entry.TotalAchieved, entry.TotalTarget)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalPercentage > result[j].TotalPercentage
	})

	return result
}

// buildManagerEntries produces one rollup entry per manager with at
// least one resolved subordinate. Team totals sum member totals; team
// goals merge member goals per package; the manager's personal goals
// move to own_goals and fold into the totals.
func buildManagerEntries(entries map[uuid.UUID]*UserProgress, dir *Directory, res *Resolver) []*UserProgress {
	var managers []*UserProgress

	for _, managerID := range dir.ManagerIDs() {
		mgr, ok := dir.User(managerID)
		if !ok {
			continue
		}
		subIDs := res.Subordinates(managerID)
		if len(subIDs) == 0 {
			continue
		}

		teamTarget, teamAchieved := 0, 0
		teamGoals := make(map[uuid.UUID]*GoalProgress)
		teamGoalOrder := []uuid.UUID{}
		memberNames := make([]string, 0, len(subIDs))
		teamProgress := make([]MemberSummary, 0, len(subIDs))

		for _, subID := range subIDs {
			sub, ok := dir.User(subID)
			if !ok {
				continue
			}
			memberNames = append(memberNames, sub.DisplayName())

			member, hasGoals := entries[subID]
			if !hasGoals {
				// Team members without goals still show on the
				// card, with an empty line.
				teamProgress = append(teamProgress, MemberSummary{
					UserID: subID,
					Name:   sub.DisplayName(),
				})
				continue
			}

			teamTarget += member.TotalTarget
			teamAchieved += member.TotalAchieved
			for _, g := range member.Goals {
				tg, ok := teamGoals[g.PackageID]
				if !ok {
					tg = &GoalProgress{
						PackageID:   g.PackageID,
						PackageName: g.PackageName,
						PackageType: g.PackageType,
					}
					teamGoals[g.PackageID] = tg
					teamGoalOrder = append(teamGoalOrder, g.PackageID)
				}
				tg.Target += g.Target
				tg.Achieved += g.Achieved
			}

			normalized := normalizeTarget(member.TotalTarget, member.TotalAchieved)
			teamProgress = append(teamProgress, MemberSummary{
				UserID:     subID,
				Name:       sub.DisplayName(),
				Target:     member.TotalTarget,
				Achieved:   member.TotalAchieved,
				Percentage: percentage(member.TotalAchieved, normalized),
			})
		}

		if len(memberNames) == 0 {
			continue
		}

		goals := make([]GoalProgress, 0, len(teamGoalOrder))
		for _, pkgID := range teamGoalOrder {
			tg := teamGoals[pkgID]
			tg.Target = normalizeTarget(tg.Target, tg.Achieved)
			tg.Percentage = percentage(tg.Achieved, tg.Target)
			goals = append(goals, *tg)
		}

		entry := &UserProgress{
			UserID:         managerID,
			UserEmail:      mgr.Email,
			UserName:       mgr.FullName,
			Nickname:       mgr.Nickname,
			ProfilePicture: mgr.ProfilePicture,
			AdminLevel:     mgr.AdminLevel,
			Profile:        mgr.Profile,
			IsManager:      true,
			TeamMembers:    memberNames,
			TeamProgress:   teamProgress,
			Goals:          goals,
			TotalTarget:    teamTarget,
			TotalAchieved:  teamAchieved,
		}

		if own, ok := entries[managerID]; ok {
			entry.OwnGoals = own.Goals
			entry.TotalTarget += own.TotalTarget
			entry.TotalAchieved += own.TotalAchieved
		}

		managers = append(managers, entry)
	}

	return managers
}
