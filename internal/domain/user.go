package domain

import "time"

// User is the platform identity the gamification layer hangs off of.
// Registration order drives rank-based badges like early_adopter.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"user_name"`
	IsAdmin      bool      `json:"is_admin"`
	RegisteredAt time.Time `json:"registered_at"`
}

// TournamentResult records one user's finish in a tournament
type TournamentResult struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TournamentID string    `json:"tournament_id"`
	Game         string    `json:"game"`
	Placement    int       `json:"placement"`
	Participants int       `json:"participants"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Comment is a user comment counted toward social badges
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginEvent records one login, deduplicated per UTC day for streaks
type LoginEvent struct {
	UserID   string    `json:"user_id"`
	LoginDay time.Time `json:"login_day"`
}
