package collaborator

import "errors"

var (
	ErrOwnerNotFound       = errors.New("import owner not found")
	ErrMalformedTask       = errors.New("malformed task payload")
	ErrMalformedImportFile = errors.New("malformed import file")
	ErrReadImportFile      = errors.New("failed to read import file")
	ErrInvalidImportFile   = errors.New("invalid import file")
	ErrStoreUpload         = errors.New("failed to store uploaded file")
	ErrEnqueueTask         = errors.New("failed to enqueue task")
	ErrCreateCollaborator  = errors.New("failed to create collaborator")
	ErrGetCollaborator     = errors.New("failed to get collaborator")
	ErrUpdateCollaborator  = errors.New("failed to update collaborator")
	ErrDeleteCollaborator  = errors.New("failed to delete collaborator")
	ErrListCollaborators   = errors.New("failed to list collaborators")
	ErrSendImportReport    = errors.New("failed to send import report")
)

// IsPermanent reports whether retrying a task that failed with err is pointless.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrOwnerNotFound) ||
		errors.Is(err, ErrMalformedTask) ||
		errors.Is(err, ErrMalformedImportFile)
}
