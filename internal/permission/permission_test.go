package permission_test

import (
	"testing"

	"github.com/grupoclick/clickcheck/internal/permission"
	"github.com/stretchr/testify/assert"
)

func TestForProfile(t *testing.T) {
	t.Run("Validator", func(t *testing.T) {
		set := permission.ForProfile(permission.ProfileValidator)
		assert.True(t, set.Validate)
		assert.True(t, set.ViewAssigned)
		assert.False(t, set.CreateValidation)
		assert.False(t, set.ManageUsers)
	})

	t.Run("Requester", func(t *testing.T) {
		set := permission.ForProfile(permission.ProfileRequester)
		assert.True(t, set.CreateValidation)
		assert.True(t, set.ViewAllValidations)
		assert.False(t, set.Validate)
	})

	t.Run("Manager", func(t *testing.T) {
		set := permission.ForProfile(permission.ProfileManager)
		assert.True(t, set.ViewReports)
		assert.True(t, set.ManagePackages)
		assert.False(t, set.ManageUsers)
	})

	t.Run("UnknownFallsBackToValidator", func(t *testing.T) {
		set := permission.ForProfile(permission.Profile("bogus"))
		assert.Equal(t, permission.ForProfile(permission.ProfileValidator), set)
	})
}

func TestResolve(t *testing.T) {
	t.Run("AdminLevelWinsOverProfile", func(t *testing.T) {
		set := permission.Resolve(true, nil, permission.ProfileValidator)
		assert.True(t, set.ManageUsers)
	})

	t.Run("CustomPermissionsWinOverProfile", func(t *testing.T) {
		custom := []byte(`{"view_dashboard":true,"validate":false,"manage_packages":true}`)
		set := permission.Resolve(false, custom, permission.ProfileValidator)
		assert.False(t, set.Validate)
		assert.True(t, set.ManagePackages)
	})

	t.Run("MalformedCustomFallsBackToProfile", func(t *testing.T) {
		set := permission.Resolve(false, []byte("{not json"), permission.ProfileValidator)
		assert.Equal(t, permission.ForProfile(permission.ProfileValidator), set)
	})
}
