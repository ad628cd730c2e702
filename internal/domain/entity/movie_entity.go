package entity

// Movie is a metadata record returned by the movie provider.
type Movie struct {
	Title      string `json:"Title"`
	IMDbID     string `json:"imdbID"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	Plot       string `json:"Plot,omitempty"`
	Genre      string `json:"Genre,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
	Type       string `json:"Type"`
	Poster     string `json:"Poster,omitempty"`
}

// MovieSummary is a single hit from a keyword search.
type MovieSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster,omitempty"`
}
