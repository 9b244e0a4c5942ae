package application

// requireOwner is the single ownership predicate behind every mutate
// path: donation edit/delete and request decide all funnel through it
// instead of repeating inline comparisons.
func requireOwner(ownerID, callerID string) error {
	if ownerID == "" || ownerID != callerID {
		return ErrForbidden
	}
	return nil
}
