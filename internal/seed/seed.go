// Package seed fills empty stores with the 2024 season standings so that a
// fresh installation serves data right away.
package seed

import (
	"context"

	"gitlab.com/f1hub/f1hub-service/internal/store"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

type driverSeed struct {
	name    string
	team    string
	points  int64
	wins    int64
	podiums int64
}

var initialDrivers = []driverSeed{
	{name: "Max Verstappen", team: "Red Bull", points: 395, wins: 14, podiums: 19},
	{name: "Sergio Perez", team: "Red Bull", points: 229, wins: 2, podiums: 8},
	{name: "Lando Norris", team: "McLaren", points: 331, wins: 3, podiums: 15},
	{name: "Charles Leclerc", team: "Ferrari", points: 307, wins: 2, podiums: 11},
	{name: "Carlos Sainz", team: "Ferrari", points: 272, wins: 1, podiums: 9},
	{name: "Lewis Hamilton", team: "Mercedes", points: 211, wins: 2, podiums: 5},
	{name: "George Russell", team: "Mercedes", points: 192, wins: 1, podiums: 4},
	{name: "Oscar Piastri", team: "McLaren", points: 268, wins: 2, podiums: 8},
	{name: "Fernando Alonso", team: "Aston Martin", points: 62, wins: 0, podiums: 0},
	{name: "Pierre Gasly", team: "Alpine", points: 36, wins: 0, podiums: 1},
}

type constructorSeed struct {
	position int64
	team     string
	color    string
	drivers  string
	points   int64
	wins     int64
	podiums  int64
}

var initialConstructors = []constructorSeed{
	{position: 1, team: "McLaren", color: "#FF8000", drivers: "Norris / Piastri", points: 599, wins: 5, podiums: 23},
	{position: 2, team: "Red Bull", color: "#3671C6", drivers: "Verstappen / Perez", points: 581, wins: 16, podiums: 27},
	{position: 3, team: "Ferrari", color: "#E8002D", drivers: "Leclerc / Sainz", points: 579, wins: 3, podiums: 20},
	{position: 4, team: "Mercedes", color: "#27F4D2", drivers: "Hamilton / Russell", points: 403, wins: 3, podiums: 9},
	{position: 5, team: "Aston Martin", color: "#229971", drivers: "Alonso / Stroll", points: 86, wins: 0, podiums: 0},
}

// Drivers inserts the initial driver standings unless the table already holds
// data.
func Drivers(ctx context.Context, drivers store.Drivers) error {
	existing, err := drivers.List(ctx, store.DriverFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, s := range initialDrivers {
		d := model.Driver{
			Name:    ptr(s.name),
			Team:    ptr(s.team),
			Points:  ptr(s.points),
			Wins:    ptr(s.wins),
			Podiums: ptr(s.podiums),
		}
		if _, err := drivers.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Constructors inserts the initial constructor standings unless the
// collection already holds data.
func Constructors(ctx context.Context, constructors store.Constructors) error {
	season := int64(2024)
	existing, err := constructors.List(ctx, store.ConstructorFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, s := range initialConstructors {
		con := model.Constructor{
			Position: ptr(s.position),
			Team:     ptr(s.team),
			Color:    ptr(s.color),
			Drivers:  ptr(s.drivers),
			Points:   ptr(s.points),
			Wins:     ptr(s.wins),
			Podiums:  ptr(s.podiums),
			Season:   &season,
		}
		if _, err := constructors.Create(ctx, con); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
