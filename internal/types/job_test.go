package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewJobPosting_AssignsRef(t *testing.T) {
	a := NewJobPosting("Engineer", "Acme", "desc", "")
	b := NewJobPosting("Engineer", "Acme", "desc", "")

	assert.NotEqual(t, uuid.Nil, a.Ref)
	assert.NotEqual(t, a.Ref, b.Ref)
}

func TestJobPosting_DisplayName(t *testing.T) {
	full := NewJobPosting("Engineer", "Acme", "desc", "")
	assert.Equal(t, "Acme - Engineer", full.DisplayName())

	titleOnly := NewJobPosting("Engineer", "", "desc", "")
	assert.Equal(t, "Engineer", titleOnly.DisplayName())

	companyOnly := NewJobPosting("", "Acme", "desc", "")
	assert.Equal(t, "Acme", companyOnly.DisplayName())

	blank := NewJobPosting("", "", "desc", "")
	assert.Equal(t, blank.Ref.String(), blank.DisplayName())
}
