package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	Resource     string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
