// Package document defines the document, filter, and query model shared by
// the store backends and the MCP tool layer, along with the timestamp
// normalization applied to every payload crossing the wire.
package document

// Document is one record in a collection: an id plus an arbitrary field
// mapping. No schema is enforced beyond what the backend itself requires.
type Document struct {
	ID   string
	Data map[string]any
}

// WithID returns the document's fields with its id merged in under "id",
// the shape every tool response uses.
func (d Document) WithID() map[string]any {
	out := make(map[string]any, len(d.Data)+1)
	for k, v := range d.Data {
		out[k] = v
	}
	out["id"] = d.ID
	return out
}

// Filter is a single field comparison. Filters on a query are AND-combined.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Order is a sort directive. Direction is "asc" or "desc".
type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	Filters    []Filter
	Orders     []Order
	// Limit caps the result count when positive.
	Limit int
}

// Comparison operators accepted by query filters, matching the Firestore
// operator set.
var Operators = []string{
	"==", "!=", "<", "<=", ">", ">=",
	"array-contains", "array-contains-any", "in", "not-in",
}

// Directions accepted by order directives.
var Directions = []string{"asc", "desc"}

// ValidOperator reports whether op is a supported filter operator.
func ValidOperator(op string) bool {
	for _, o := range Operators {
		if o == op {
			return true
		}
	}
	return false
}

// ValidDirection reports whether dir is a supported sort direction.
func ValidDirection(dir string) bool {
	return dir == "asc" || dir == "desc"
}
