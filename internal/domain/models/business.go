package models

// Manager represents a business owner who receives reports for their employees.
type Manager struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"` // WhatsApp number, also the delivery address for scheduled reports
}

// Employee represents a worker whose daily income entries are tracked.
type Employee struct {
	ID        string `json:"id"`
	ManagerID string `json:"manager_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}
