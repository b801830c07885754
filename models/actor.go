package models

import "fmt"

// Gender of an actor
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// Genders lists the accepted gender values
var Genders = []Gender{GenderFemale, GenderMale, GenderOther}

// ParseGender validates s as a Gender
func ParseGender(s string) (Gender, error) {
	for _, g := range Genders {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid gender: %q", s)
}

// Actor is a performer the agency can cast
type Actor struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"` // Unique
	Age    *int   `json:"age" db:"age"`
	Gender Gender `json:"gender" db:"gender"`
}

// TableName returns the table name for the Actor model
func (Actor) TableName() string {
	return "actors"
}

// NewActor creates a new, unsaved Actor
func NewActor(name string, age int, gender Gender) *Actor {
	return &Actor{
		Name:   name,
		Age:    &age,
		Gender: gender,
	}
}
