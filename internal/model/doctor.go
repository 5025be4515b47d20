package model

import "github.com/shopspring/decimal"

// Doctor врач в том виде, в котором его отдаёт backend
type Doctor struct {
	DoctorID       int64           `json:"doctorId"`
	UserID         int64           `json:"userId"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Description    string          `json:"description"`
	AcademicDegree string          `json:"academicDegree"`
	Price          decimal.Decimal `json:"price"`
	PhoneNumber    string          `json:"phoneNumber"`
	Address        string          `json:"address"`
	Gender         string          `json:"gender"`
	Birthday       string          `json:"birthday"`
	Image          string          `json:"image"`
	OtherImages    []string        `json:"otherImages"`
	Specialty      *Specialty      `json:"specialty"`
	Clinic         *Clinic         `json:"clinic"`
}

// SpecialtyName название специальности или пустая строка
func (d *Doctor) SpecialtyName() string {
	if d.Specialty == nil {
		return ""
	}
	return d.Specialty.Name
}

// SpecialtyID ID специальности или 0
func (d *Doctor) SpecialtyID() int64 {
	if d.Specialty == nil {
		return 0
	}
	return d.Specialty.ID
}

// ClinicName название клиники или пустая строка
func (d *Doctor) ClinicName() string {
	if d.Clinic == nil {
		return ""
	}
	return d.Clinic.Name
}

// ClinicID ID клиники или 0
func (d *Doctor) ClinicID() int64 {
	if d.Clinic == nil {
		return 0
	}
	return d.Clinic.ID
}

// DoctorSelfUpdateRequest тело PUT /doctor/profile/me
type DoctorSelfUpdateRequest struct {
	Description    string `json:"description" validate:"max=2000"`
	AcademicDegree string `json:"academicDegree" validate:"max=255"`
}

// DoctorRequest тело POST /admin/doctors и PUT /admin/doctors/{id}
type DoctorRequest struct {
	UserID         int64           `json:"userId" validate:"required,gt=0"`
	SpecialtyID    int64           `json:"specialtyId" validate:"required,gt=0"`
	ClinicID       int64           `json:"clinicId" validate:"required,gt=0"`
	FullName       string          `json:"fullName,omitempty" validate:"omitempty,min=2,max=255"`
	PhoneNumber    string          `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Address        string          `json:"address,omitempty" validate:"max=500"`
	Description    string          `json:"description,omitempty" validate:"max=2000"`
	AcademicDegree string          `json:"academicDegree,omitempty" validate:"max=255"`
	Price          decimal.Decimal `json:"price"`
	Gender         string          `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Birthday       string          `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Image          string          `json:"image,omitempty"`
	OtherImages    []string        `json:"otherImages,omitempty"`
}

// NewDoctorRequest тело обновления с текущими значениями врача
func NewDoctorRequest(d Doctor) DoctorRequest {
	return DoctorRequest{
		UserID:         d.UserID,
		SpecialtyID:    d.SpecialtyID(),
		ClinicID:       d.ClinicID(),
		FullName:       d.FullName,
		PhoneNumber:    d.PhoneNumber,
		Address:        d.Address,
		Description:    d.Description,
		AcademicDegree: d.AcademicDegree,
		Price:          d.Price,
		Gender:         d.Gender,
		Birthday:       d.Birthday,
		Image:          d.Image,
		OtherImages:    d.OtherImages,
	}
}

// DoctorRegistrationRequest тело POST /admin/doctors/register: новый пользователь и профиль врача
type DoctorRegistrationRequest struct {
	FullName       string          `json:"fullName" validate:"required,min=2,max=255"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=6,max=100"`
	PhoneNumber    string          `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Address        string          `json:"address,omitempty" validate:"max=500"`
	Gender         string          `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Birthday       string          `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SpecialtyID    int64           `json:"specialtyId" validate:"required,gt=0"`
	ClinicID       int64           `json:"clinicId" validate:"required,gt=0"`
	Description    string          `json:"description,omitempty" validate:"max=2000"`
	AcademicDegree string          `json:"academicDegree,omitempty" validate:"max=255"`
	Price          decimal.Decimal `json:"price"`
}
