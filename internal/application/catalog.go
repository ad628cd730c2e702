package application

// DefaultRandomTitles backs /movies/random when no other catalog is configured.
var DefaultRandomTitles = StaticCatalog{
	"Inception",
	"Avatar",
	"The Matrix",
	"Titanic",
	"Star Wars",
	"The Godfather",
	"Pulp Fiction",
	"The Dark Knight",
	"Forrest Gump",
	"Schindler's List",
	"The Shawshank Redemption",
	"Gladiator",
	"The Lord of the Rings: The Fellowship of the Ring",
	"The Lord of the Rings: The Return of the King",
	"The Lord of the Rings: The Two Towers",
	"Interstellar",
	"Fight Club",
	"Goodfellas",
	"The Silence of the Lambs",
	"Se7en",
	"Jurassic Park",
	"The Lion King",
	"Braveheart",
	"Saving Private Ryan",
	"The Prestige",
	"Whiplash",
	"Django Unchained",
	"Avengers: Endgame",
	"Black Panther",
	"The Avengers",
	"Iron Man",
	"Spider-Man: Into the Spider-Verse",
	"Frozen",
	"Coco",
	"Up",
	"WALL-E",
	"Toy Story",
	"Finding Nemo",
	"Monsters, Inc.",
	"Shrek",
	"The Truman Show",
	"The Social Network",
	"A Beautiful Mind",
	"American Beauty",
	"The Wolf of Wall Street",
	"La La Land",
	"The Grand Budapest Hotel",
	"Slumdog Millionaire",
	"The Pursuit of Happyness",
	"The Green Mile",
	"The Pianist",
	"The Great Gatsby",
	"Harry Potter and the Sorcerer's Stone",
	"Harry Potter and the Deathly Hallows: Part 2",
	"The Hunger Games",
	"Twilight",
	"The Maze Runner",
	"Divergent",
	"The Fault in Our Stars",
	"The Notebook",
	"A Star Is Born",
	"Bohemian Rhapsody",
	"Rocketman",
	"The Irishman",
	"Knives Out",
	"Parasite",
	"Jojo Rabbit",
	"The Lighthouse",
	"Once Upon a Time in Hollywood",
	"1917",
	"No Country for Old Men",
	"There Will Be Blood",
	"The Departed",
	"The Revenant",
	"Mad Max: Fury Road",
}

// DefaultTopRatedTitles backs /movies/top-rated.
var DefaultTopRatedTitles = StaticCatalog{
	"The Shawshank Redemption",
	"The Godfather",
	"The Dark Knight",
	"The Godfather Part II",
	"12 Angry Men",
	"Schindler's List",
	"The Lord of the Rings: The Return of the King",
	"Pulp Fiction",
	"The Good, the Bad and the Ugly",
	"Fight Club",
}
