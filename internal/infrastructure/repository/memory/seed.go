package memory

import (
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

// SeedTeamNames is a ten-club slice of the Premier League used by the demo data source.
func SeedTeamNames() map[string]string {
	return map[string]string{
		"1":  "Arsenal",
		"2":  "Aston Villa",
		"3":  "Brighton",
		"4":  "Chelsea",
		"5":  "Crystal Palace",
		"6":  "Liverpool",
		"7":  "Manchester City",
		"8":  "Newcastle",
		"9":  "Nottingham Forest",
		"10": "Tottenham",
	}
}

// SeedPredictions returns raw point predictions keyed by team name, the way the predictor publishes them.
func SeedPredictions() []player.Record {
	names := SeedTeamNames()
	return []player.Record{
		{ID: "101", Name: "Raya", Team: names["1"], Position: player.PositionGoalkeeper, Price: 55, RawPredictedPoints: 4.6},
		{ID: "102", Name: "Saliba", Team: names["1"], Position: player.PositionDefender, Price: 60, RawPredictedPoints: 5.1},
		{ID: "103", Name: "Gabriel", Team: names["1"], Position: player.PositionDefender, Price: 60, RawPredictedPoints: 5.0},
		{ID: "104", Name: "Saka", Team: names["1"], Position: player.PositionMidfielder, Price: 100, RawPredictedPoints: 6.8},
		{ID: "105", Name: "Havertz", Team: names["1"], Position: player.PositionForward, Price: 78, RawPredictedPoints: 5.2},
		{ID: "201", Name: "Martinez", Team: names["2"], Position: player.PositionGoalkeeper, Price: 50, RawPredictedPoints: 4.1},
		{ID: "202", Name: "Digne", Team: names["2"], Position: player.PositionDefender, Price: 45, RawPredictedPoints: 3.8},
		{ID: "203", Name: "Rogers", Team: names["2"], Position: player.PositionMidfielder, Price: 65, RawPredictedPoints: 4.9},
		{ID: "204", Name: "Watkins", Team: names["2"], Position: player.PositionForward, Price: 90, RawPredictedPoints: 5.9},
		{ID: "301", Name: "Verbruggen", Team: names["3"], Position: player.PositionGoalkeeper, Price: 45, RawPredictedPoints: 3.9},
		{ID: "302", Name: "Dunk", Team: names["3"], Position: player.PositionDefender, Price: 45, RawPredictedPoints: 3.7},
		{ID: "303", Name: "Mitoma", Team: names["3"], Position: player.PositionMidfielder, Price: 65, RawPredictedPoints: 4.7},
		{ID: "304", Name: "Welbeck", Team: names["3"], Position: player.PositionForward, Price: 55, RawPredictedPoints: 4.2},
		{ID: "401", Name: "Sanchez", Team: names["4"], Position: player.PositionGoalkeeper, Price: 50, RawPredictedPoints: 4.0},
		{ID: "402", Name: "Cucurella", Team: names["4"], Position: player.PositionDefender, Price: 55, RawPredictedPoints: 4.5},
		{ID: "403", Name: "Palmer", Team: names["4"], Position: player.PositionMidfielder, Price: 105, RawPredictedPoints: 7.1},
		{ID: "404", Name: "Jackson", Team: names["4"], Position: player.PositionForward, Price: 75, RawPredictedPoints: 5.3},
		{ID: "501", Name: "Henderson", Team: names["5"], Position: player.PositionGoalkeeper, Price: 45, RawPredictedPoints: 4.2},
		{ID: "502", Name: "Munoz", Team: names["5"], Position: player.PositionDefender, Price: 50, RawPredictedPoints: 4.4},
		{ID: "503", Name: "Eze", Team: names["5"], Position: player.PositionMidfielder, Price: 70, RawPredictedPoints: 5.0},
		{ID: "504", Name: "Mateta", Team: names["5"], Position: player.PositionForward, Price: 75, RawPredictedPoints: 5.4},
		{ID: "601", Name: "Alisson", Team: names["6"], Position: player.PositionGoalkeeper, Price: 55, RawPredictedPoints: 4.5},
		{ID: "602", Name: "Van Dijk", Team: names["6"], Position: player.PositionDefender, Price: 60, RawPredictedPoints: 5.0},
		{ID: "603", Name: "Alexander-Arnold", Team: names["6"], Position: player.PositionDefender, Price: 70, RawPredictedPoints: 5.4},
		{ID: "604", Name: "Salah", Team: names["6"], Position: player.PositionMidfielder, Price: 130, RawPredictedPoints: 8.4},
		{ID: "605", Name: "Gakpo", Team: names["6"], Position: player.PositionMidfielder, Price: 75, RawPredictedPoints: 5.3},
		{ID: "701", Name: "Ederson", Team: names["7"], Position: player.PositionGoalkeeper, Price: 55, RawPredictedPoints: 4.3},
		{ID: "702", Name: "Gvardiol", Team: names["7"], Position: player.PositionDefender, Price: 60, RawPredictedPoints: 4.9},
		{ID: "703", Name: "Foden", Team: names["7"], Position: player.PositionMidfielder, Price: 90, RawPredictedPoints: 5.6},
		{ID: "704", Name: "Haaland", Team: names["7"], Position: player.PositionForward, Price: 150, RawPredictedPoints: 8.1},
		{ID: "801", Name: "Pope", Team: names["8"], Position: player.PositionGoalkeeper, Price: 50, RawPredictedPoints: 4.4},
		{ID: "802", Name: "Hall", Team: names["8"], Position: player.PositionDefender, Price: 50, RawPredictedPoints: 4.3},
		{ID: "803", Name: "Gordon", Team: names["8"], Position: player.PositionMidfielder, Price: 75, RawPredictedPoints: 5.2},
		{ID: "804", Name: "Isak", Team: names["8"], Position: player.PositionForward, Price: 95, RawPredictedPoints: 6.6},
		{ID: "901", Name: "Sels", Team: names["9"], Position: player.PositionGoalkeeper, Price: 50, RawPredictedPoints: 4.6},
		{ID: "902", Name: "Milenkovic", Team: names["9"], Position: player.PositionDefender, Price: 50, RawPredictedPoints: 4.5},
		{ID: "903", Name: "Elanga", Team: names["9"], Position: player.PositionMidfielder, Price: 55, RawPredictedPoints: 4.3},
		{ID: "904", Name: "Wood", Team: names["9"], Position: player.PositionForward, Price: 70, RawPredictedPoints: 5.6},
		{ID: "1001", Name: "Vicario", Team: names["10"], Position: player.PositionGoalkeeper, Price: 50, RawPredictedPoints: 3.9},
		{ID: "1002", Name: "Porro", Team: names["10"], Position: player.PositionDefender, Price: 55, RawPredictedPoints: 4.4},
		{ID: "1003", Name: "Son", Team: names["10"], Position: player.PositionMidfielder, Price: 100, RawPredictedPoints: 5.9},
		{ID: "1004", Name: "Solanke", Team: names["10"], Position: player.PositionForward, Price: 75, RawPredictedPoints: 4.8},
		{ID: "1101", Name: "Matthews", Team: names["5"], Position: player.PositionGoalkeeper, Price: 40, RawPredictedPoints: 2.0},
		{ID: "1102", Name: "Morato", Team: names["9"], Position: player.PositionDefender, Price: 40, RawPredictedPoints: 2.4},
		{ID: "1103", Name: "Veltman", Team: names["3"], Position: player.PositionDefender, Price: 40, RawPredictedPoints: 2.2},
		{ID: "1104", Name: "Barkley", Team: names["2"], Position: player.PositionMidfielder, Price: 45, RawPredictedPoints: 2.6},
		{ID: "1105", Name: "Bissouma", Team: names["10"], Position: player.PositionMidfielder, Price: 45, RawPredictedPoints: 2.5},
		{ID: "1106", Name: "Nketiah", Team: names["5"], Position: player.PositionForward, Price: 45, RawPredictedPoints: 2.7},
		{ID: "1107", Name: "Awoniyi", Team: names["9"], Position: player.PositionForward, Price: 45, RawPredictedPoints: 2.6},
	}
}

func SeedSchedule() fixture.Schedule {
	return fixture.Schedule{
		Events: []fixture.Event{
			{ID: 7, Name: "Gameweek 7", Finished: true},
			{ID: 8, Name: "Gameweek 8", Finished: true},
			{ID: 9, Name: "Gameweek 9", IsCurrent: true},
			{ID: 10, Name: "Gameweek 10", IsNext: true},
			{ID: 11, Name: "Gameweek 11"},
			{ID: 12, Name: "Gameweek 12"},
			{ID: 13, Name: "Gameweek 13"},
			{ID: 14, Name: "Gameweek 14"},
		},
		Fixtures: []fixture.Fixture{
			{ID: "fx-001", Gameweek: 8, HomeTeamID: "1", AwayTeamID: "10", HomeDifficulty: 3, AwayDifficulty: 5, Finished: true},
			{ID: "fx-002", Gameweek: 8, HomeTeamID: "2", AwayTeamID: "9", HomeDifficulty: 2, AwayDifficulty: 3, Finished: true},
			{ID: "fx-003", Gameweek: 8, HomeTeamID: "3", AwayTeamID: "8", HomeDifficulty: 4, AwayDifficulty: 3, Finished: true},
			{ID: "fx-004", Gameweek: 8, HomeTeamID: "4", AwayTeamID: "7", HomeDifficulty: 5, AwayDifficulty: 4, Finished: true},
			{ID: "fx-005", Gameweek: 8, HomeTeamID: "5", AwayTeamID: "6", HomeDifficulty: 5, AwayDifficulty: 2, Finished: true},
			{ID: "fx-006", Gameweek: 9, HomeTeamID: "9", AwayTeamID: "1", HomeDifficulty: 5, AwayDifficulty: 2},
			{ID: "fx-007", Gameweek: 9, HomeTeamID: "8", AwayTeamID: "10", HomeDifficulty: 3, AwayDifficulty: 4},
			{ID: "fx-008", Gameweek: 9, HomeTeamID: "7", AwayTeamID: "2", HomeDifficulty: 3, AwayDifficulty: 5},
			{ID: "fx-009", Gameweek: 9, HomeTeamID: "6", AwayTeamID: "3", HomeDifficulty: 3, AwayDifficulty: 5},
			{ID: "fx-010", Gameweek: 9, HomeTeamID: "5", AwayTeamID: "4", HomeDifficulty: 4, AwayDifficulty: 2},
			{ID: "fx-011", Gameweek: 10, HomeTeamID: "1", AwayTeamID: "8", HomeDifficulty: 4, AwayDifficulty: 5},
			{ID: "fx-012", Gameweek: 10, HomeTeamID: "9", AwayTeamID: "7", HomeDifficulty: 5, AwayDifficulty: 2},
			{ID: "fx-013", Gameweek: 10, HomeTeamID: "10", AwayTeamID: "6", HomeDifficulty: 5, AwayDifficulty: 3},
			{ID: "fx-014", Gameweek: 10, HomeTeamID: "2", AwayTeamID: "5", HomeDifficulty: 2, AwayDifficulty: 3},
			{ID: "fx-015", Gameweek: 10, HomeTeamID: "3", AwayTeamID: "4", HomeDifficulty: 4, AwayDifficulty: 3},
			{ID: "fx-016", Gameweek: 11, HomeTeamID: "7", AwayTeamID: "1", HomeDifficulty: 5, AwayDifficulty: 5},
			{ID: "fx-017", Gameweek: 11, HomeTeamID: "6", AwayTeamID: "8", HomeDifficulty: 4, AwayDifficulty: 5},
			{ID: "fx-018", Gameweek: 11, HomeTeamID: "5", AwayTeamID: "9", HomeDifficulty: 2, AwayDifficulty: 2},
			{ID: "fx-019", Gameweek: 11, HomeTeamID: "4", AwayTeamID: "10", HomeDifficulty: 3, AwayDifficulty: 4},
			{ID: "fx-020", Gameweek: 11, HomeTeamID: "3", AwayTeamID: "2", HomeDifficulty: 3, AwayDifficulty: 3},
			{ID: "fx-021", Gameweek: 12, HomeTeamID: "1", AwayTeamID: "6", HomeDifficulty: 5, AwayDifficulty: 5},
			{ID: "fx-022", Gameweek: 12, HomeTeamID: "7", AwayTeamID: "5", HomeDifficulty: 2, AwayDifficulty: 5},
			{ID: "fx-023", Gameweek: 12, HomeTeamID: "8", AwayTeamID: "4", HomeDifficulty: 4, AwayDifficulty: 4},
			{ID: "fx-024", Gameweek: 12, HomeTeamID: "9", AwayTeamID: "3", HomeDifficulty: 3, AwayDifficulty: 2},
			{ID: "fx-025", Gameweek: 12, HomeTeamID: "10", AwayTeamID: "2", HomeDifficulty: 3, AwayDifficulty: 3},
			{ID: "fx-026", Gameweek: 13, HomeTeamID: "5", AwayTeamID: "1", HomeDifficulty: 5, AwayDifficulty: 2},
			{ID: "fx-027", Gameweek: 13, HomeTeamID: "4", AwayTeamID: "6", HomeDifficulty: 5, AwayDifficulty: 4},
			{ID: "fx-028", Gameweek: 13, HomeTeamID: "3", AwayTeamID: "7", HomeDifficulty: 5, AwayDifficulty: 3},
			{ID: "fx-029", Gameweek: 13, HomeTeamID: "2", AwayTeamID: "8", HomeDifficulty: 4, AwayDifficulty: 3},
			{ID: "fx-030", Gameweek: 13, HomeTeamID: "10", AwayTeamID: "9", HomeDifficulty: 2, AwayDifficulty: 3},
			{ID: "fx-031", Gameweek: 14, HomeTeamID: "1", AwayTeamID: "4", HomeDifficulty: 4, AwayDifficulty: 5},
			{ID: "fx-032", Gameweek: 14, HomeTeamID: "5", AwayTeamID: "3", HomeDifficulty: 3, AwayDifficulty: 2},
			{ID: "fx-033", Gameweek: 14, HomeTeamID: "6", AwayTeamID: "2", HomeDifficulty: 3, AwayDifficulty: 5},
			{ID: "fx-034", Gameweek: 14, HomeTeamID: "7", AwayTeamID: "10", HomeDifficulty: 3, AwayDifficulty: 5},
			{ID: "fx-035", Gameweek: 14, HomeTeamID: "8", AwayTeamID: "9", HomeDifficulty: 2, AwayDifficulty: 4},
			{ID: "fx-tbc-1", HomeTeamID: "6", AwayTeamID: "7", HomeDifficulty: 5, AwayDifficulty: 5},
		},
		TeamNames: SeedTeamNames(),
	}
}
