package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	BgColor     string  `json:"bgColor"`
	DueDate     *string `json:"dueDate,omitempty"`
	Details     string  `json:"details"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=65535"`
	Status      *string `json:"status,omitempty"`
	BgColor     *string `json:"bgColor,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Details     *string `json:"details,omitempty" binding:"omitempty,max=65535"`
}

// UpdateTaskRequest is a merge-patch: absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=65535"`
	Status      *string `json:"status,omitempty"`
	BgColor     *string `json:"bgColor,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Details     *string `json:"details,omitempty" binding:"omitempty,max=65535"`
}

type DeleteTaskResponse struct {
	ID string `json:"id"`
}
