package bot

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestParseComment(t *testing.T) {
	users := &fakeUsers{ids: map[string]int64{
		"alice": 1,
		"bob":   2,
		"carol": 3,
	}}
	uc := newTestUsecase(nil, users, nil, nil, nil, nil)

	tests := []struct {
		name          string
		body          string
		wantMentioned bool
		wantIDs       []int64
	}{
		{
			name: "no mentions",
			body: "just a regular comment",
		},
		{
			name:          "bot only",
			body:          "thanks @gitpoap-bot",
			wantMentioned: true,
		},
		{
			name:          "bot plus contributors in order",
			body:          "@gitpoap-bot please reward @alice and @bob",
			wantMentioned: true,
			wantIDs:       []int64{1, 2},
		},
		{
			name:    "contributors without bot",
			body:    "@carol @alice did great work",
			wantIDs: []int64{3, 1},
		},
		{
			name:          "duplicate handles collapse",
			body:          "@gitpoap-bot @alice @alice @bob @alice",
			wantMentioned: true,
			wantIDs:       []int64{1, 2},
		},
		{
			name:          "bot handle case insensitive and never a contributor",
			body:          "@GitPOAP-Bot @gitpoap-bot @bob",
			wantMentioned: true,
			wantIDs:       []int64{2},
		},
		{
			name:          "unresolvable handle skipped",
			body:          "@gitpoap-bot @ghost @alice",
			wantMentioned: true,
			wantIDs:       []int64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.ParseComment(context.Background(), tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.BotMentioned != tt.wantMentioned {
				t.Errorf("BotMentioned = %v, want %v", got.BotMentioned, tt.wantMentioned)
			}
			if !reflect.DeepEqual(got.ContributorIDs, tt.wantIDs) {
				t.Errorf("ContributorIDs = %v, want %v", got.ContributorIDs, tt.wantIDs)
			}
		})
	}
}

func TestParseCommentLookupOutage(t *testing.T) {
	users := &fakeUsers{outageErr: errors.New("dial tcp: connection refused")}
	uc := newTestUsecase(nil, users, nil, nil, nil, nil)

	_, err := uc.ParseComment(context.Background(), "@gitpoap-bot @alice")
	if err == nil {
		t.Fatal("expected error when the lookup capability is down")
	}
}
