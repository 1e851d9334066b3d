package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    SearchCondition
		wantErr bool
	}{
		{
			name:    "bare json",
			content: `{"location":"Mapo","people_count":6,"space_type":"MEETING"}`,
			want:    SearchCondition{Location: "Mapo", PeopleCount: 6, SpaceType: "MEETING"},
		},
		{
			name:    "wrapped in a code fence",
			content: "```json\n{\"location\":\"\",\"people_count\":0,\"space_type\":\"study\"}\n```",
			want:    SearchCondition{SpaceType: "STUDY"},
		},
		{
			name:    "surrounded by prose",
			content: `Sure! Here is the filter: {"location":"Gangnam","people_count":2,"space_type":""} Hope that helps.`,
			want:    SearchCondition{Location: "Gangnam", PeopleCount: 2},
		},
		{
			name:    "negative count clamps to zero",
			content: `{"location":"","people_count":-3,"space_type":""}`,
			want:    SearchCondition{},
		},
		{
			name:    "no json object",
			content: "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "broken json",
			content: `{"location": "Mapo",`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCondition(tc.content)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrAIParseFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
