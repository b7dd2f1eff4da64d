package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type training struct {
	Title string
}

func TestCheckDeletableNoReferences(t *testing.T) {
	err := CheckDeletable("mentor", "training", []training{}, func(tr training) string {
		return tr.Title
	})
	assert.NoError(t, err)
}

func TestCheckDeletableBlocked(t *testing.T) {
	rows := []training{
		{Title: "Go Bootcamp"},
		{Title: "Frontend Basics"},
	}
	err := CheckDeletable("mentor", "training", rows, func(tr training) string {
		return tr.Title
	})
	require.Error(t, err)
	assert.Equal(t,
		"Cannot delete mentor. Currently referenced by 2 training(s): Go Bootcamp, Frontend Basics",
		err.Error())

	var conflict *Conflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"Go Bootcamp", "Frontend Basics"}, conflict.Labels)
}

func TestCheckDeletableSingleReference(t *testing.T) {
	err := CheckDeletable("service offering", "service", []training{{Title: "Web Development"}},
		func(tr training) string { return tr.Title })
	require.Error(t, err)
	assert.Equal(t,
		"Cannot delete service offering. Currently referenced by 1 service(s): Web Development",
		err.Error())
}
