package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle gathers every registered endpoint so route registration
// stays in one place.
type HandlerBundle struct {
	// Job intake and lifecycle.
	CreateJobHandler   gin.HandlerFunc
	GetJobHandler      gin.HandlerFunc
	PendingJobsHandler gin.HandlerFunc
	ActiveJobsHandler  gin.HandlerFunc
	JobHistoryHandler  gin.HandlerFunc
	AcceptJobHandler   gin.HandlerFunc
	RejectJobHandler   gin.HandlerFunc
	StartJobHandler    gin.HandlerFunc
	CompleteJobHandler gin.HandlerFunc
	CancelJobHandler   gin.HandlerFunc

	// Dashboard.
	GetDashboardHandler    gin.HandlerFunc
	StreamDashboardHandler gin.HandlerFunc

	// Availability.
	GetAvailabilityHandler              gin.HandlerFunc
	SetAvailableHandler                 gin.HandlerFunc
	SetOnlineHandler                    gin.HandlerFunc
	SetWorkingHoursHandler              gin.HandlerFunc
	BlockDatesHandler                   gin.HandlerFunc
	UnblockDatesHandler                 gin.HandlerFunc
	SetTemporaryUnavailabilityHandler   gin.HandlerFunc
	ClearTemporaryUnavailabilityHandler gin.HandlerFunc

	// Earnings.
	GetEarningsHandler             gin.HandlerFunc
	RecalculateWindowTotalsHandler gin.HandlerFunc

	// Notifications.
	RecentNotificationsHandler gin.HandlerFunc
	UnreadCountHandler         gin.HandlerFunc
	MarkReadHandler            gin.HandlerFunc
}
