// Request and response payloads for the task endpoints.
package tasks

// CreateTaskRequest is the payload for creating a task. Status and priority
// default to "pending" and "medium" when omitted; DueDate is an optional
// date string.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest is the payload for a partial update. Nil fields are left
// untouched; present fields are validated the same way as on create.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// ListQuery carries the optional filters and sort order for listing tasks.
// Sort is one of "newest" (default), "oldest", "dueDate", "priority".
type ListQuery struct {
	Status   string
	Priority string
	Sort     string
}

// TaskResponse is the success envelope for single-task endpoints.
type TaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Task    *Task  `json:"task"`
}

// ListResponse is the success envelope for list endpoints.
type ListResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Tasks   []Task `json:"tasks"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the success envelope for endpoints returning no resource.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
