package util

import (
	"Tieba/internal/pkg/consts"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name                  string
		page, pageSize        int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, consts.DefaultPageSize, 0},
		{"third page", 3, 10, 10, 20},
		{"oversized page", 2, consts.MaxPageSize + 1, consts.MaxPageSize, consts.MaxPageSize},
		{"negative page", -1, 5, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := Paginate(tc.page, tc.pageSize)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []uint64{1, 2, 30}, ParseIDs("1, 2,abc,,0,30"))
	assert.Empty(t, ParseIDs(""))
}

func TestGetMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	got := GetMidnight(time.Date(2024, 5, 6, 23, 59, 1, 5, loc))
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, loc), got)
}

func TestValidateDTO(t *testing.T) {
	type profile struct {
		Nickname *string `validate:"omitempty,min=1,max=3"`
	}
	long := "abcd"
	assert.Error(t, ValidateDTO(&profile{Nickname: &long}))
	assert.NoError(t, ValidateDTO(&profile{}))
}
