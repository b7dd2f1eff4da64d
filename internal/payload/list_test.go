package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		in           PageReqQuery
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", in: PageReqQuery{}, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "negative page", in: PageReqQuery{Page: -3, PageSize: 10}, wantPage: 1, wantPageSize: 10},
		{name: "oversized page size", in: PageReqQuery{Page: 2, PageSize: 500}, wantPage: 2, wantPageSize: MaxPageSize},
		{name: "within bounds", in: PageReqQuery{Page: 3, PageSize: 50}, wantPage: 3, wantPageSize: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantPageSize, q.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	q := PageReqQuery{Page: 3, PageSize: 20}
	q.Normalize()
	assert.Equal(t, 40, q.Offset())

	q = PageReqQuery{}
	q.Normalize()
	assert.Equal(t, 0, q.Offset())
}
