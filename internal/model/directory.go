package model

// Specialty медицинская специальность
type Specialty struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// Clinic клиника
type Clinic struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// SpecialtyRequest тело создания специальности
type SpecialtyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// ClinicRequest тело создания клиники
type ClinicRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Address     string `json:"address" validate:"required,max=500"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// NewClinicRequest тело PUT /admin/clinics/{id} из текущей клиники
func NewClinicRequest(c Clinic) ClinicRequest {
	return ClinicRequest{
		Name:        c.Name,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Description: c.Description,
	}
}

// NewSpecialtyRequest тело PUT /admin/specialties/{id} из текущей специальности
func NewSpecialtyRequest(s Specialty) SpecialtyRequest {
	return SpecialtyRequest{Name: s.Name, Description: s.Description}
}
