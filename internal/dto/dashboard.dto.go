package dto

// DashboardMetricsDTO replica o retorno do agregado get_dashboard_metrics.
type DashboardMetricsDTO struct {
	TotalMessages     int64   `json:"total_messages"`
	MessagesToday     int64   `json:"messages_today"`
	MessagesThisWeek  int64   `json:"messages_this_week"`
	MessagesThisMonth int64   `json:"messages_this_month"`
	UniqueCustomers   int64   `json:"unique_customers"`
	ResponseRate      float64 `json:"response_rate"`
	TotalServices     int64   `json:"total_services"`
}
