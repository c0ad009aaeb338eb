package record

// FieldKind drives per-field format validation.
type FieldKind int

const (
	Text FieldKind = iota
	Email
	Date // YYYY-MM-DD
	URL
	Password
	List // ordered list of opaque strings (files, links)
)

type (
	// Field describes one record field of a kind.
	Field struct {
		Name       string
		Kind       FieldKind
		Required   bool
		Unique     bool
		Searchable bool
	}

	// Schema describes a record kind: its collection, natural key, fields
	// and the query behavior of its list endpoint.
	Schema struct {
		// Name is the collection name, e.g. "students".
		Name string
		// Singular is used in user-facing messages, e.g. "student".
		Singular string
		// IDField is the unique natural key field, e.g. "id" or "week_id".
		IDField string
		// NaturalKey records whether ids are caller-assigned; otherwise
		// the engine assigns them at creation.
		NaturalKey bool

		Fields []Field

		// SortFields is the allow-list for the list endpoint's sort param;
		// anything else falls back to DefaultSort.
		SortFields  []string
		SortAliases map[string]string
		DefaultSort string
		DefaultDesc bool

		// CommentFK is the foreign-key field linking a Comment to this kind;
		// empty when the kind has no comment sub-resource.
		CommentFK string
	}
)

// Field returns the descriptor for `name`, if any.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// PasswordField returns the name of the kind's password field, or "".
func (s Schema) PasswordField() string {
	for _, f := range s.Fields {
		if f.Kind == Password {
			return f.Name
		}
	}
	return ""
}

// EmailField returns the name of the kind's email field, or "".
func (s Schema) EmailField() string {
	for _, f := range s.Fields {
		if f.Kind == Email {
			return f.Name
		}
	}
	return ""
}

// SearchFields returns the fields matched by the list endpoint's search param.
func (s Schema) SearchFields() []string {
	flds := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Searchable {
			flds = append(flds, f.Name)
		}
	}
	return flds
}

func (s Schema) HasComments() bool {
	return s.CommentFK != ""
}

// CommentsCollection names the collection holding this kind's comments.
func (s Schema) CommentsCollection() string {
	return s.Name + "_comments"
}

// resolveSort maps a requested sort field through aliases and the allow-list,
// falling back to the schema default.
func (s Schema) resolveSort(field string) string {
	if alias, ok := s.SortAliases[field]; ok {
		field = alias
	}
	for _, f := range s.SortFields {
		if f == field {
			return field
		}
	}
	return s.DefaultSort
}

// Built-in schemas, one per admin resource kind.
var (
	Students = Schema{
		Name:       "students",
		Singular:   "student",
		IDField:    "id",
		NaturalKey: true,
		Fields: []Field{
			{Name: "id", Required: true, Unique: true, Searchable: true},
			{Name: "name", Required: true, Searchable: true},
			{Name: "email", Kind: Email, Required: true, Unique: true, Searchable: true},
			{Name: "password", Kind: Password, Required: true},
		},
		SortFields:  []string{"name", "id", "email"},
		SortAliases: map[string]string{"student_id": "id"},
		DefaultSort: "name",
	}

	Assignments = Schema{
		Name:     "assignments",
		Singular: "assignment",
		IDField:  "id",
		Fields: []Field{
			{Name: "title", Required: true, Searchable: true},
			{Name: "description", Required: true, Searchable: true},
			{Name: "due_date", Kind: Date, Required: true},
			{Name: "files", Kind: List},
		},
		SortFields:  []string{"title", "due_date", "created_at"},
		DefaultSort: "due_date",
		CommentFK:   "assignment_id",
	}

	Resources = Schema{
		Name:     "resources",
		Singular: "resource",
		IDField:  "id",
		Fields: []Field{
			{Name: "title", Required: true, Searchable: true},
			{Name: "description", Searchable: true},
			{Name: "link", Kind: URL, Required: true},
		},
		SortFields:  []string{"title", "created_at"},
		DefaultSort: "created_at",
		DefaultDesc: true,
		CommentFK:   "resource_id",
	}

	Weeks = Schema{
		Name:       "weeks",
		Singular:   "week",
		IDField:    "week_id",
		NaturalKey: true,
		Fields: []Field{
			{Name: "week_id", Required: true, Unique: true},
			{Name: "title", Required: true, Searchable: true},
			{Name: "start_date", Kind: Date, Required: true},
			{Name: "description", Searchable: true},
			{Name: "links", Kind: List},
		},
		SortFields:  []string{"title", "start_date", "created_at"},
		DefaultSort: "start_date",
		CommentFK:   "week_id",
	}

	// AllSchemas lists every registered record kind.
	AllSchemas = []Schema{Students, Assignments, Resources, Weeks}
)
