package memory

import (
	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
)

const (
	TeamNameTheBallers = "The Ballers"
	TeamNameAliens     = "Aliens"
)

func SeedUsers() []user.User {
	return []user.User{
		{ID: 1, Username: "elasticshark", Password: "pass123", Role: user.RoleAdmin, HeightInches: 70, WeightLbs: 155, HideBiometrics: true},
		{ID: 2, Username: "jairo", Password: "jenkins", Role: user.RolePlayer, HeightInches: 72, WeightLbs: 180},
		{ID: 3, Username: "john", Password: "jerky", Role: user.RolePlayer, HeightInches: 68, WeightLbs: 165},
		{ID: 4, Username: "jerry", Password: "johnson", Role: user.RolePlayer, HeightInches: 75, WeightLbs: 200},
		{ID: 5, Username: "SirMixAlot", Password: "pantsss", Role: user.RolePlayer, HeightInches: 71, WeightLbs: 190},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{Name: TeamNameAliens, CaptainID: 1, Sport: "basketball", Status: team.StatusSuspended},
		{Name: "Da Bois", CaptainID: 2, Sport: "basketball", Status: team.StatusAccepted},
		{Name: "Ravers Fantasy", CaptainID: 3, Sport: "softball", Status: team.StatusDenied},
		{Name: "The Ascended", CaptainID: 4, Sport: "softball", Status: team.StatusDenied},
		{Name: TeamNameTheBallers, CaptainID: 5, Sport: "basketball", Status: team.StatusAccepted},
	}
}

func SeedTeamRequests() []teamrequest.TeamRequest {
	return []teamrequest.TeamRequest{
		{ID: 1, RequesterID: 2, TeamName: TeamNameTheBallers, TeamID: 5, Status: teamrequest.StatusAccepted},
		{ID: 2, RequesterID: 3, TeamName: TeamNameTheBallers, TeamID: 5, Status: teamrequest.StatusAccepted},
		{ID: 3, RequesterID: 4, TeamName: TeamNameAliens, TeamID: 1, Status: teamrequest.StatusPending},
		{ID: 4, RequesterID: 5, TeamName: TeamNameTheBallers, TeamID: 5, Status: teamrequest.StatusPending},
	}
}

func SeedBasketballStats() []stat.Basketball {
	return []stat.Basketball{
		{ID: 1, UserID: 2, GameID: 1, TeamName: TeamNameTheBallers, Points: 14, Rebounds: 6, Assists: 3, Steals: 1},
		{ID: 2, UserID: 3, GameID: 1, TeamName: TeamNameTheBallers, Points: 9, Rebounds: 2, Assists: 7, Steals: 2},
		{ID: 3, UserID: 2, GameID: 2, TeamName: TeamNameTheBallers, Points: 21, Rebounds: 8, Assists: 1, Steals: 0},
		{ID: 4, UserID: 3, GameID: 2, TeamName: TeamNameTheBallers, Points: 4, Rebounds: 3, Assists: 5, Steals: 3},
	}
}
