package fantasy

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

func TestValidatePicks(t *testing.T) {
	rules := DefaultRules()
	validPicks := []player.Record{
		{ID: "p1", Team: "t1", Position: player.PositionGoalkeeper, Price: 60},
		{ID: "p2", Team: "t1", Position: player.PositionDefender, Price: 60},
		{ID: "p3", Team: "t2", Position: player.PositionDefender, Price: 60},
		{ID: "p4", Team: "t3", Position: player.PositionDefender, Price: 60},
		{ID: "p5", Team: "t4", Position: player.PositionDefender, Price: 60},
		{ID: "p6", Team: "t5", Position: player.PositionDefender, Price: 60},
		{ID: "p7", Team: "t1", Position: player.PositionMidfielder, Price: 60},
		{ID: "p8", Team: "t2", Position: player.PositionMidfielder, Price: 60},
		{ID: "p9", Team: "t3", Position: player.PositionMidfielder, Price: 60},
		{ID: "p10", Team: "t4", Position: player.PositionMidfielder, Price: 60},
		{ID: "p11", Team: "t5", Position: player.PositionMidfielder, Price: 60},
		{ID: "p12", Team: "t2", Position: player.PositionForward, Price: 60},
		{ID: "p13", Team: "t3", Position: player.PositionForward, Price: 60},
		{ID: "p14", Team: "t4", Position: player.PositionGoalkeeper, Price: 60},
		{ID: "p15", Team: "t5", Position: player.PositionForward, Price: 60},
	}

	tests := []struct {
		name      string
		mutate    func([]player.Record, *Rules)
		targetErr error
	}{
		{
			name: "valid picks",
			mutate: func(_ []player.Record, _ *Rules) {
			},
			targetErr: nil,
		},
		{
			name: "invalid size",
			mutate: func(_ []player.Record, cfg *Rules) {
				cfg.Formation = Formation{{Position: player.PositionGoalkeeper, Min: 2, Max: 2}}
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "budget exceeded",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[0].Price = 500
				picks[1].Price = 500
				picks[2].Price = 500
			},
			targetErr: ErrExceededBudget,
		},
		{
			name: "team limit exceeded",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[5].Team = "t1"
			},
			targetErr: ErrExceededTeamLimit,
		},
		{
			name: "formation insufficient",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[2].Position = player.PositionForward
				picks[3].Position = player.PositionForward
				picks[4].Position = player.PositionForward
			},
			targetErr: ErrInsufficientFormation,
		},
		{
			name: "formation exceeded",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[6].Position = player.PositionGoalkeeper
			},
			targetErr: ErrExceededFormation,
		},
		{
			name: "duplicate player",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[1].ID = "p1"
			},
			targetErr: ErrDuplicatePlayerInSquad,
		},
		{
			name: "unknown position",
			mutate: func(picks []player.Record, _ *Rules) {
				picks[0].Position = player.Position("UNK")
			},
			targetErr: ErrUnknownPlayerPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks := append([]player.Record(nil), validPicks...)
			cfg := rules
			tt.mutate(picks, &cfg)

			err := ValidatePicks(picks, cfg)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestParseFormation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Formation
		wantErr bool
	}{
		{
			name: "default layout",
			raw:  "GKP:2-2,DEF:5-5,MID:5-5,FWD:3-3",
			want: DefaultFormation(),
		},
		{
			name: "exact counts and numeric positions",
			raw:  "1:1, 2:4, 3:4, 4:2",
			want: Formation{
				{Position: player.PositionGoalkeeper, Min: 1, Max: 1},
				{Position: player.PositionDefender, Min: 4, Max: 4},
				{Position: player.PositionMidfielder, Min: 4, Max: 4},
				{Position: player.PositionForward, Min: 2, Max: 2},
			},
		},
		{
			name: "ranged quota",
			raw:  "GKP:1-1,DEF:3-5",
			want: Formation{
				{Position: player.PositionGoalkeeper, Min: 1, Max: 1},
				{Position: player.PositionDefender, Min: 3, Max: 5},
			},
		},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "missing count", raw: "GKP", wantErr: true},
		{name: "unknown position", raw: "LW:2-2", wantErr: true},
		{name: "min above max", raw: "DEF:5-3", wantErr: true},
		{name: "duplicate position", raw: "DEF:2-2,DEF:3-3", wantErr: true},
		{name: "no players", raw: "DEF:0-0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormation(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want.String() {
				t.Fatalf("ParseFormation(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDefaultFormationSquadSize(t *testing.T) {
	if size := DefaultFormation().SquadSize(); size != 15 {
		t.Fatalf("expected squad size 15, got %d", size)
	}
}
