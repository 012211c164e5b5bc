package postgres

import "time"

const clubNameConstraint = "clubs_lower_name_key"

type clubTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	LogoURL   string    `db:"logo_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type clubInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	LogoURL  string `db:"logo_url"`
}
