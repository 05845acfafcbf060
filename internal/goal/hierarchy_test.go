package goal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/grupoclick/clickcheck/internal/user"
)

func managedUser(name string, managerID *uuid.UUID) user.User {
	return user.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		FullName:  name,
		ManagerID: managerID,
	}
}

func TestResolverSubordinates(t *testing.T) {
	t.Run("TransitiveChain", func(t *testing.T) {
		top := managedUser("top", nil)
		mid := managedUser("mid", &top.ID)
		leaf := managedUser("leaf", &mid.ID)

		dir := BuildDirectory([]user.User{top, mid, leaf})
		res := NewResolver(dir, 10, nil)

		assert.Equal(t, []uuid.UUID{mid.ID, leaf.ID}, res.Subordinates(top.ID))
		assert.Equal(t, []uuid.UUID{leaf.ID}, res.Subordinates(mid.ID))
		assert.Empty(t, res.Subordinates(leaf.ID))
	})

	t.Run("CycleTerminatesWithoutDuplicates", func(t *testing.T) {
		a := managedUser("a", nil)
		b := managedUser("b", nil)
		a.ManagerID = &b.ID
		b.ManagerID = &a.ID

		dir := BuildDirectory([]user.User{a, b})
		res := NewResolver(dir, 10, nil)

		subs := res.Subordinates(a.ID)
		assert.Equal(t, []uuid.UUID{b.ID}, subs)
	})

	t.Run("DiamondReportsOnce", func(t *testing.T) {
		// Two mid-level managers cannot share a report in a tree, but a
		// corrupt snapshot might still hand the resolver one. The
		// visited set keeps the walk from double counting.
		top := managedUser("top", nil)
		m1 := managedUser("m1", &top.ID)
		m2 := managedUser("m2", &top.ID)
		shared := managedUser("shared", &m1.ID)

		dir := BuildDirectory([]user.User{top, m1, m2, shared})
		res := NewResolver(dir, 10, nil)

		subs := res.Subordinates(top.ID)
		assert.Len(t, subs, 3)
		assert.Contains(t, subs, m1.ID)
		assert.Contains(t, subs, m2.ID)
		assert.Contains(t, subs, shared.ID)
	})

	t.Run("DepthCapTruncates", func(t *testing.T) {
		users := make([]user.User, 0, 6)
		var prev *uuid.UUID
		for i := 0; i < 6; i++ {
			u := managedUser(string(rune('a'+i)), prev)
			users = append(users, u)
			id := u.ID
			prev = &id
		}

		dir := BuildDirectory(users)
		res := NewResolver(dir, 2, nil)

		// Depth cap 2 keeps the chain at levels 0..2 below the root:
		// three subordinates, the rest truncated.
		subs := res.Subordinates(users[0].ID)
		assert.Len(t, subs, 3)
	})

	t.Run("CachedResultIsStable", func(t *testing.T) {
		top := managedUser("top", nil)
		kid := managedUser("kid", &top.ID)

		dir := BuildDirectory([]user.User{top, kid})
		res := NewResolver(dir, 10, nil)

		first := res.Subordinates(top.ID)
		second := res.Subordinates(top.ID)
		assert.Equal(t, first, second)
	})
}

func TestDirectoryManagerOrder(t *testing.T) {
	m1 := managedUser("zeta", nil)
	m2 := managedUser("alpha", nil)
	r1 := managedUser("r1", &m1.ID)
	r2 := managedUser("r2", &m2.ID)
	r3 := managedUser("r3", &m1.ID)

	dir := BuildDirectory([]user.User{m1, m2, r1, r2, r3})

	// First-appearance order of manager references, not name order.
	assert.Equal(t, []uuid.UUID{m1.ID, m2.ID}, dir.ManagerIDs())
}
