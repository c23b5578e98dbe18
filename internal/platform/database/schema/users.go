package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table     string
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string

	// EmailKey is the unique constraint on Email.
	EmailKey string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:     "users",
	Username:  "username",
	Password:  "password",
	Email:     "email",
	FirstName: "first_name",
	LastName:  "last_name",
	EmailKey:  "users_email_key",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{t.Username, t.Password, t.Email, t.FirstName, t.LastName}
}
