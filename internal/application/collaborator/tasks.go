package collaborator

const (
	TaskImportCSV    = "import_csv"
	TaskImportReport = "import_report"
)
