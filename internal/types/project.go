package types

// Project is the backend's handle for a generated document. The client
// never mutates a project after materialization; it only opens it.
type Project struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Topic   string  `json:"topic"`
	DocType DocType `json:"doc_type"`
}

// Resolved reports whether the project carries a backend-assigned identity.
func (p *Project) Resolved() bool {
	return p != nil && p.ID > 0
}
