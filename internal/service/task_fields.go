package service

// taskField pairs the external (wire) name of a task field with its internal
// (entity) name. Entries are in update order.
type taskField struct {
	External string
	Internal string
}

// taskFields is the single rename table between the task payloads and
// domain.Task. Both translation directions and every validation error
// that names a task field go through it.
var taskFields = []taskField{
	{External: "title", Internal: "name"},
	{External: "index", Internal: "index"},
	{External: "content", Internal: "description"},
	{External: "status", Internal: "taskStatus"},
	{External: "assignee_id", Internal: "assignee"},
	{External: "taskLabelIds", Internal: "labels"},
}

// ExternalField returns the wire name for an internal task field name.
func ExternalField(internal string) (string, bool) {
	for _, f := range taskFields {
		if f.Internal == internal {
			return f.External, true
		}
	}
	return "", false
}

// InternalField returns the task field name for a wire name.
func InternalField(external string) (string, bool) {
	for _, f := range taskFields {
		if f.External == external {
			return f.Internal, true
		}
	}
	return "", false
}
