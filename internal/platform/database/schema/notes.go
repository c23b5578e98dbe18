package schema

// NotesTable represents the 'notes' table
type NotesTable struct {
	Table   string
	ID      string
	Title   string
	Content string
	Owner   string
}

// Notes is the schema definition for notes
var Notes = NotesTable{
	Table:   "notes",
	ID:      "id",
	Title:   "title",
	Content: "content",
	Owner:   "owner",
}

// Columns returns all standard column names
func (t NotesTable) Columns() []string {
	return []string{t.ID, t.Title, t.Content, t.Owner}
}
