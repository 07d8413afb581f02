package metrics

// RecordTaskCreated counts a newly created task
func (m *Metrics) RecordTaskCreated() {
	safeExecute(func() { m.tasksCreatedTotal.Inc() })
}

// RecordTaskMoved counts a cross-column move
func (m *Metrics) RecordTaskMoved() {
	safeExecute(func() { m.tasksMovedTotal.Inc() })
}

// RecordReorder counts an accepted reorder. Kind is "columns" or "tasks".
func (m *Metrics) RecordReorder(kind string) {
	safeExecute(func() { m.reordersTotal.WithLabelValues(kind).Inc() })
}

// RecordReorderReject counts a rejected reorder payload
func (m *Metrics) RecordReorderReject(kind string) {
	safeExecute(func() { m.reorderRejectsTotal.WithLabelValues(kind).Inc() })
}

// RecordBroadcast counts one realtime event fan-out
func (m *Metrics) RecordBroadcast() {
	safeExecute(func() { m.broadcastsTotal.Inc() })
}

// RecordBroadcastDrop counts an event dropped for a slow client
func (m *Metrics) RecordBroadcastDrop() {
	safeExecute(func() { m.broadcastDropsTotal.Inc() })
}

// RecordActivityWrite counts an activity log write. Result is
// "success" or "failure".
func (m *Metrics) RecordActivityWrite(result string) {
	safeExecute(func() { m.activityWritesTotal.WithLabelValues(result).Inc() })
}

// SetWSClients tracks the connected websocket client count
func (m *Metrics) SetWSClients(n int) {
	safeExecute(func() { m.wsClientsConnected.Set(float64(n)) })
}

// SetBoardCount updates the stored board gauge
func (m *Metrics) SetBoardCount(n int64) {
	safeExecute(func() { m.boardsGauge.Set(float64(n)) })
}

// SetUserCount updates the registered user gauge
func (m *Metrics) SetUserCount(n int64) {
	safeExecute(func() { m.usersGauge.Set(float64(n)) })
}
