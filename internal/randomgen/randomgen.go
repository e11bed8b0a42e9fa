// Package randomgen produces random driver records for integration tests and
// load generation.
package randomgen

import (
	"fmt"
	"math/rand"

	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

var firstNames = []string{
	"Alex", "Bruno", "Carlos", "Daniel", "Esteban", "Felipe", "Guanyu",
	"Heikki", "Isack", "Jenson", "Kimi", "Lando", "Max", "Nico", "Oscar",
}

var lastNames = []string{
	"Albon", "Bottas", "Gasly", "Hulkenberg", "Lawson", "Magnussen",
	"Norris", "Ocon", "Piastri", "Russell", "Sainz", "Stroll", "Tsunoda",
}

var teams = []string{
	"Red Bull", "Ferrari", "McLaren", "Mercedes", "Aston Martin",
	"Alpine", "Williams", "Haas", "Sauber", "RB",
}

// Name returns a random driver name.
func Name() string {
	return fmt.Sprintf("%s %s",
		firstNames[rand.Intn(len(firstNames))],
		lastNames[rand.Intn(len(lastNames))])
}

// Team returns a random team name.
func Team() string {
	return teams[rand.Intn(len(teams))]
}

// Driver returns a driver with a random name, team, and plausible statistics.
func Driver() model.Driver {
	name := Name()
	team := Team()
	points := rand.Int63n(400)
	wins := rand.Int63n(10)
	podiums := wins + rand.Int63n(10)
	return model.Driver{
		Name:    &name,
		Team:    &team,
		Points:  &points,
		Wins:    &wins,
		Podiums: &podiums,
	}
}
