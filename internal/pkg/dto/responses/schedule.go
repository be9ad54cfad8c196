package responses

type ScheduleExport struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	ExpiresAt  string `json:"expires_at"`
}

type SelectDate struct {
	SelectedDate string `json:"selected_date"`
}
