package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Driver is one row of the championship standings table. All fields with the
// exception of the Id field are optional so that projected query results can
// omit the columns that were not selected.
type Driver struct {
	Id        int64      `json:"id"                   db:"id"`
	Name      *string    `json:"name,omitempty"       db:"name"`
	Team      *string    `json:"team,omitempty"       db:"team"`
	Points    *int64     `json:"points,omitempty"     db:"points"`
	Wins      *int64     `json:"wins,omitempty"       db:"wins"`
	Podiums   *int64     `json:"podiums,omitempty"    db:"podiums"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Constructor is one entry of the constructor standings, stored as a document.
// The Drivers field is a free-form description of the team's driver lineup.
type Constructor struct {
	Id       bson.ObjectID `json:"id"                 bson:"_id,omitempty"`
	Position *int64        `json:"position,omitempty" bson:"position,omitempty"`
	Team     *string       `json:"team,omitempty"     bson:"team,omitempty"`
	Color    *string       `json:"color,omitempty"    bson:"color,omitempty"`
	Drivers  *string       `json:"drivers,omitempty"  bson:"drivers,omitempty"`
	Points   *int64        `json:"points,omitempty"   bson:"points,omitempty"`
	Wins     *int64        `json:"wins,omitempty"     bson:"wins,omitempty"`
	Podiums  *int64        `json:"podiums,omitempty"  bson:"podiums,omitempty"`
	Season   *int64        `json:"season,omitempty"   bson:"season,omitempty"`
}

// Contact is a message submitted through the contact form of the site.
type Contact struct {
	Id          bson.ObjectID `json:"id"                     bson:"_id,omitempty"`
	Name        *string       `json:"name,omitempty"         bson:"name,omitempty"`
	Email       *string       `json:"email,omitempty"        bson:"email,omitempty"`
	Number      *string       `json:"number,omitempty"       bson:"number,omitempty"`
	Msg         *string       `json:"msg,omitempty"          bson:"msg,omitempty"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
}
