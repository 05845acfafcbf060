package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	t.Run("AllApproved", func(t *testing.T) {
		links := []LinkValidation{
			{URL: "https://a.example", Status: "approved"},
			{URL: "https://b.example", Approved: true},
		}
		status, approved := deriveStatus(links)
		assert.Equal(t, StatusApproved, status)
		assert.Equal(t, 2, approved)
	})

	t.Run("NoneApproved", func(t *testing.T) {
		links := []LinkValidation{
			{URL: "https://a.example", Status: "rejected"},
			{URL: "https://b.example"},
		}
		status, approved := deriveStatus(links)
		assert.Equal(t, StatusRejected, status)
		assert.Equal(t, 0, approved)
	})

	t.Run("SomeApproved", func(t *testing.T) {
		links := []LinkValidation{
			{URL: "https://a.example", Status: "approved"},
			{URL: "https://b.example", Status: "rejected"},
			{URL: "https://c.example", Approved: true},
		}
		status, approved := deriveStatus(links)
		assert.Equal(t, StatusPartiallyApproved, status)
		assert.Equal(t, 2, approved)
	})

	t.Run("StatusFlagEitherMarksApproval", func(t *testing.T) {
		links := []LinkValidation{
			{URL: "https://a.example", Status: "approved", Approved: false},
		}
		status, approved := deriveStatus(links)
		assert.Equal(t, StatusApproved, status)
		assert.Equal(t, 1, approved)
	})
}
