package collaborator

type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize grants view, update and delete to the record owner only.
func Authorize(actorID uint, action Action, c Collaborator) error {
	switch action {
	case ActionView, ActionUpdate, ActionDelete:
		if actorID != 0 && c.UserID == actorID {
			return nil
		}
	}
	return ErrForbidden
}
