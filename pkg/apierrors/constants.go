package apierrors

const (
	MsgFailListTasks      = "failListTasks"
	MsgFailGetTask        = "failGetTask"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgRouteNotFound      = "routeNotFound"
)
