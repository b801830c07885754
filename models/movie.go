package models

// Movie is a production the agency casts for
type Movie struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"` // Unique
	ReleaseDate Date   `json:"release_date" db:"release_date"`
}

// TableName returns the table name for the Movie model
func (Movie) TableName() string {
	return "movies"
}

// NewMovie creates a new, unsaved Movie
func NewMovie(title string, releaseDate Date) *Movie {
	return &Movie{
		Title:       title,
		ReleaseDate: releaseDate,
	}
}
