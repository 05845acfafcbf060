package goal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupoclick/clickcheck/internal/request"
	"github.com/grupoclick/clickcheck/internal/user"
)

func goalRow(u user.User, pkgID uuid.UUID, pkgName string, target int) GoalRow {
	return GoalRow{
		GoalID:      uuid.New(),
		Month:       "2026-08",
		TargetCount: target,
		UserID:      u.ID,
		UserEmail:   u.Email,
		UserName:    u.FullName,
		Nickname:    u.Nickname,
		ManagerID:   u.ManagerID,
		PackageID:   pkgID,
		PackageName: pkgName,
		PackageType: "content",
	}
}

func flatProgress(rows []GoalRow, counts map[progressKey]achievedTotals, users ...user.User) []*UserProgress {
	dir := BuildDirectory(users)
	return BuildProgress(rows, counts, dir, NewResolver(dir, 10, nil))
}

func TestBuildProgressIndividuals(t *testing.T) {
	pkg := uuid.New()

	t.Run("ZeroTargetWithWorkCountsAsFull", func(t *testing.T) {
		u := managedUser("ana", nil)
		rows := []GoalRow{goalRow(u, pkg, "Posts", 0)}
		counts := map[progressKey]achievedTotals{
			{Email: u.Email, PackageID: pkg}: {Approved: 5},
		}

		result := flatProgress(rows, counts, u)
		require.Len(t, result, 1)

		entry := result[0]
		assert.Equal(t, 5, entry.Goals[0].Target)
		assert.Equal(t, 5, entry.Goals[0].Achieved)
		assert.Equal(t, 100, entry.Goals[0].Percentage)
		assert.Equal(t, 5, entry.TotalTarget)
		assert.Equal(t, 100, entry.TotalPercentage)
	})

	t.Run("ZeroTargetNoWorkStaysZero", func(t *testing.T) {
		u := managedUser("ana", nil)
		rows := []GoalRow{goalRow(u, pkg, "Posts", 0)}

		result := flatProgress(rows, nil, u)
		require.Len(t, result, 1)

		assert.Equal(t, 0, result[0].TotalTarget)
		assert.Equal(t, 0, result[0].TotalPercentage)
	})

	t.Run("TotalsSumAcrossGoals", func(t *testing.T) {
		u := managedUser("ana", nil)
		pkg2 := uuid.New()
		rows := []GoalRow{
			goalRow(u, pkg, "Posts", 10),
			goalRow(u, pkg2, "Stories", 4),
		}
		counts := map[progressKey]achievedTotals{
			{Email: u.Email, PackageID: pkg}:  {Approved: 5},
			{Email: u.Email, PackageID: pkg2}: {Approved: 4},
		}

		result := flatProgress(rows, counts, u)
		require.Len(t, result, 1)

		entry := result[0]
		assert.Equal(t, 14, entry.TotalTarget)
		assert.Equal(t, 9, entry.TotalAchieved)
		assert.Equal(t, 64, entry.TotalPercentage)
	})

	t.Run("EmailJoinIsCaseInsensitive", func(t *testing.T) {
		u := managedUser("ana", nil)
		u.Email = "Ana@Example.com"
		rows := []GoalRow{goalRow(u, pkg, "Posts", 10)}

		counts := CountsIndex([]request.AchievedCount{
			{RequestedBy: "ANA@example.COM", PackageID: pkg, Approved: 7},
		})

		result := flatProgress(rows, counts, u)
		require.Len(t, result, 1)
		assert.Equal(t, 7, result[0].TotalAchieved)
	})

	t.Run("RankedByPercentageDescending", func(t *testing.T) {
		low := managedUser("low", nil)
		high := managedUser("high", nil)
		rows := []GoalRow{
			goalRow(low, pkg, "Posts", 10),
			goalRow(high, pkg, "Posts", 10),
		}
		counts := map[progressKey]achievedTotals{
			{Email: low.Email, PackageID: pkg}:  {Approved: 2},
			{Email: high.Email, PackageID: pkg}: {Approved: 9},
		}

		result := flatProgress(rows, counts, low, high)
		require.Len(t, result, 2)
		assert.Equal(t, high.ID, result[0].UserID)
		assert.Equal(t, low.ID, result[1].UserID)
	})

	t.Run("TiedEntriesKeepArrivalOrder", func(t *testing.T) {
		first := managedUser("first", nil)
		second := managedUser("second", nil)
		rows := []GoalRow{
			goalRow(first, pkg, "Posts", 10),
			goalRow(second, pkg, "Posts", 20),
		}
		counts := map[progressKey]achievedTotals{
			{Email: first.Email, PackageID: pkg}:  {Approved: 5},
			{Email: second.Email, PackageID: pkg}: {Approved: 10},
		}

		result := flatProgress(rows, counts, first, second)
		require.Len(t, result, 2)
		assert.Equal(t, first.ID, result[0].UserID)
		assert.Equal(t, second.ID, result[1].UserID)
	})
}

func TestBuildProgressManagerRollup(t *testing.T) {
	pkg := uuid.New()

	t.Run("TeamReplacesIndividualCards", func(t *testing.T) {
		mgr := managedUser("mgr", nil)
		a := managedUser("a", &mgr.ID)
		b := managedUser("b", &mgr.ID)

		rows := []GoalRow{
			goalRow(a, pkg, "Posts", 10),
			goalRow(b, pkg, "Posts", 10),
		}
		counts := map[progressKey]achievedTotals{
			{Email: a.Email, PackageID: pkg}: {Approved: 4},
			{Email: b.Email, PackageID: pkg}: {Approved: 6},
		}

		result := flatProgress(rows, counts, mgr, a, b)
		require.Len(t, result, 3)

		var entry *UserProgress
		for _, e := range result {
			if e.UserID == mgr.ID {
				entry = e
			}
		}
		require.NotNil(t, entry)
		assert.True(t, entry.IsManager)
		assert.Equal(t, 20, entry.TotalTarget)
		assert.Equal(t, 10, entry.TotalAchieved)
		assert.Equal(t, 50, entry.TotalPercentage)
		assert.ElementsMatch(t, []string{"a", "b"}, entry.TeamMembers)

		// Team goals merged per package.
		require.Len(t, entry.Goals, 1)
		assert.Nil(t, entry.Goals[0].GoalID)
		assert.Equal(t, 20, entry.Goals[0].Target)
		assert.Equal(t, 10, entry.Goals[0].Achieved)
	})

	t.Run("ManagerOwnGoalsFoldIntoTotals", func(t *testing.T) {
		mgr := managedUser("mgr", nil)
		a := managedUser("a", &mgr.ID)

		rows := []GoalRow{
			goalRow(mgr, pkg, "Posts", 5),
			goalRow(a, pkg, "Posts", 10),
		}
		counts := map[progressKey]achievedTotals{
			{Email: mgr.Email, PackageID: pkg}: {Approved: 5},
			{Email: a.Email, PackageID: pkg}:   {Approved: 5},
		}

		result := flatProgress(rows, counts, mgr, a)

		// The manager appears once: the rollup, not the individual card.
		require.Len(t, result, 1)
		entry := result[0]
		assert.True(t, entry.IsManager)
		require.Len(t, entry.OwnGoals, 1)
		assert.Equal(t, 15, entry.TotalTarget)
		assert.Equal(t, 10, entry.TotalAchieved)
		assert.Equal(t, 67, entry.TotalPercentage)
	})

	t.Run("MemberWithoutGoalsStillListed", func(t *testing.T) {
		mgr := managedUser("mgr", nil)
		a := managedUser("a", &mgr.ID)
		idle := managedUser("idle", &mgr.ID)

		rows := []GoalRow{goalRow(a, pkg, "Posts", 10)}
		counts := map[progressKey]achievedTotals{
			{Email: a.Email, PackageID: pkg}: {Approved: 10},
		}

		result := flatProgress(rows, counts, mgr, a, idle)
		require.Len(t, result, 1)

		entry := result[0]
		require.Len(t, entry.TeamProgress, 2)
		var idleLine *MemberSummary
		for i := range entry.TeamProgress {
			if entry.TeamProgress[i].UserID == idle.ID {
				idleLine = &entry.TeamProgress[i]
			}
		}
		require.NotNil(t, idleLine)
		assert.Equal(t, 0, idleLine.Target)
		assert.Equal(t, 0, idleLine.Achieved)
		assert.Equal(t, 0, idleLine.Percentage)
	})

	t.Run("MemberSummaryShowsRawTargetWithNormalizedPercentage", func(t *testing.T) {
		mgr := managedUser("mgr", nil)
		a := managedUser("a", &mgr.ID)

		rows := []GoalRow{goalRow(a, pkg, "Posts", 0)}
		counts := map[progressKey]achievedTotals{
			{Email: a.Email, PackageID: pkg}: {Approved: 3},
		}

		result := flatProgress(rows, counts, mgr, a)
		require.Len(t, result, 1)
		require.Len(t, result[0].TeamProgress, 1)

		line := result[0].TeamProgress[0]
		// The goal-level rule already snapped the target to 3; the
		// summary shows the member's stored total and a full bar.
		assert.Equal(t, 3, line.Target)
		assert.Equal(t, 3, line.Achieved)
		assert.Equal(t, 100, line.Percentage)
	})

	t.Run("TransitiveReportsRollUpToTheTop", func(t *testing.T) {
		top := managedUser("top", nil)
		mid := managedUser("mid", &top.ID)
		leaf := managedUser("leaf", &mid.ID)

		rows := []GoalRow{
			goalRow(mid, pkg, "Posts", 10),
			goalRow(leaf, pkg, "Posts", 10),
		}
		counts := map[progressKey]achievedTotals{
			{Email: mid.Email, PackageID: pkg}:  {Approved: 10},
			{Email: leaf.Email, PackageID: pkg}: {Approved: 0},
		}

		result := flatProgress(rows, counts, top, mid, leaf)

		var topEntry, midEntry *UserProgress
		for _, e := range result {
			switch e.UserID {
			case top.ID:
				topEntry = e
			case mid.ID:
				midEntry = e
			}
		}
		require.NotNil(t, topEntry)
		require.NotNil(t, midEntry)

		// Top sees both reports; mid is itself a manager of leaf.
		assert.Equal(t, 20, topEntry.TotalTarget)
		assert.Equal(t, 10, topEntry.TotalAchieved)
		assert.True(t, midEntry.IsManager)
		assert.Equal(t, []string{"leaf"}, midEntry.TeamMembers)
	})

	t.Run("ManagerWithoutResolvedMembersStaysIndividual", func(t *testing.T) {
		mgr := managedUser("mgr", nil)

		// Nothing in the directory reports to the manager.
		rows := []GoalRow{goalRow(mgr, pkg, "Posts", 10)}
		counts := map[progressKey]achievedTotals{
			{Email: mgr.Email, PackageID: pkg}: {Approved: 5},
		}

		result := flatProgress(rows, counts, mgr)
		require.Len(t, result, 1)
		assert.False(t, result[0].IsManager)
		assert.Equal(t, 50, result[0].TotalPercentage)
	})

	t.Run("TeamPackageZeroTargetNormalizes", func(t *testing.T) {
		mgr := managedUser("mgr", nil)
		a := managedUser("a", &mgr.ID)
		b := managedUser("b", &mgr.ID)

		rows := []GoalRow{
			goalRow(a, pkg, "Posts", 0),
			goalRow(b, pkg, "Posts", 0),
		}
		counts := map[progressKey]achievedTotals{
			{Email: a.Email, PackageID: pkg}: {Approved: 2},
		}

		result := flatProgress(rows, counts, mgr, a, b)
		require.Len(t, result, 1)

		entry := result[0]
		require.Len(t, entry.Goals, 1)
		assert.Equal(t, 2, entry.Goals[0].Target)
		assert.Equal(t, 100, entry.Goals[0].Percentage)
		assert.Equal(t, 100, entry.TotalPercentage)
	})
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 100, percentage(3, 3))
	assert.Equal(t, 150, percentage(3, 2))
}

func TestMonthRange(t *testing.T) {
	start, end, err := monthRange("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01T00:00:00Z", start.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, "2026-02-28T23:59:59Z", end.Format("2006-01-02T15:04:05Z07:00"))

	_, _, err = monthRange("02/2026")
	assert.Error(t, err)
}
