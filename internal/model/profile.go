package model

// Profile holds the fields extracted from free-text CV content.
type Profile struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
}

// Experience is a single work history entry.
type Experience struct {
	Title       string `json:"title"`
	Years       string `json:"years"`
	Description string `json:"description"`
}
