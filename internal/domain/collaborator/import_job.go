package collaborator

type ImportJob struct {
	FilePath string `json:"file_path"`
	UserID   uint   `json:"user_id"`
}

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Processed int        `json:"processed"`
	Created   int        `json:"created"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors"`
}

// ImportReport is what the owner receives once a job finishes.
type ImportReport struct {
	To        string     `json:"to"`
	Processed int        `json:"processed"`
	Errors    []RowError `json:"errors"`
}
