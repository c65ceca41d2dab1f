package llm

// Model is a selectable upstream model as shown to clients.
type Model struct {
	ID          string `json:"id" doc:"Upstream model identifier"`
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description"`
}

var catalog = []Model{
	{
		ID:          "claude-sonnet-4-20250514",
		Name:        "Claude Sonnet 4",
		Description: "המודל המתקדם ביותר",
	},
	{
		ID:          "claude-3-5-sonnet-20241022",
		Name:        "Claude 3.5 Sonnet",
		Description: "מודל מאוזן לשימוש כללי",
	},
}

// Models returns the static model catalog. The list is informational; any
// model id is forwarded upstream as given.
func Models() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}
