package staffdirectory

// StaffMember запись о сотруднике из справочника
type StaffMember struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Branch      string `json:"branch"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
