package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
)

// DirectoryService врачи, специальности и клиники.
// Каждый экран перечитывает данные, общего кэша нет.
type DirectoryService struct {
	client *backend.Client
	logger *zap.Logger
}

func NewDirectoryService(client *backend.Client, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		client: client,
		logger: logger,
	}
}

// FindDoctors публичный поиск врачей с клиентскими фильтрами
func (s *DirectoryService) FindDoctors(ctx context.Context, criteria search.Criteria) ([]model.Doctor, error) {
	doctors, err := s.client.PublicDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return search.FilterDoctors(doctors, criteria), nil
}

// Doctor карточка врача
func (s *DirectoryService) Doctor(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.client.PublicDoctor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return doctor, nil
}

// Specialties список специальностей
func (s *DirectoryService) Specialties(ctx context.Context) ([]model.Specialty, error) {
	list, err := s.client.Specialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	return list, nil
}

// SpecialtyDetails специальность и её врачи
func (s *DirectoryService) SpecialtyDetails(ctx context.Context, id int64) (*model.Specialty, []model.Doctor, error) {
	specialty, err := s.client.Specialty(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get specialty: %w", err)
	}
	doctors, err := s.client.DoctorsBySpecialty(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list specialty doctors: %w", err)
	}
	return specialty, doctors, nil
}

// Clinics список клиник
func (s *DirectoryService) Clinics(ctx context.Context) ([]model.Clinic, error) {
	list, err := s.client.Clinics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	return list, nil
}

// Clinic карточка клиники
func (s *DirectoryService) Clinic(ctx context.Context, id int64) (*model.Clinic, error) {
	clinic, err := s.client.Clinic(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get clinic: %w", err)
	}
	return clinic, nil
}

// AdminDoctors список врачей для администратора с фильтрами
func (s *DirectoryService) AdminDoctors(ctx context.Context, criteria search.Criteria) ([]model.Doctor, error) {
	doctors, err := s.client.AdminDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return search.FilterDoctors(doctors, criteria), nil
}

// CreateDoctor создаёт профиль врача для существующего пользователя
func (s *DirectoryService) CreateDoctor(ctx context.Context, req model.DoctorRequest) (*model.Doctor, error) {
	if err := checkDoctorRequest(&req); err != nil {
		return nil, err
	}

	doctor, err := s.client.CreateDoctor(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	s.logger.Info("Doctor profile created",
		zap.Int64("doctor_id", doctor.DoctorID),
		zap.Int64("user_id", req.UserID))
	return doctor, nil
}

// RegisterDoctor создаёт пользователя и профиль врача одним запросом
func (s *DirectoryService) RegisterDoctor(ctx context.Context, req model.DoctorRegistrationRequest) (*model.Doctor, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.SpecialtyID == 0:
		return nil, ErrNoSpecialty
	case req.ClinicID == 0:
		return nil, ErrNoClinic
	case !req.Price.IsPositive():
		return nil, ErrInvalidPrice
	}
	if err := Validate(req); err != nil {
		return nil, err
	}

	doctor, err := s.client.RegisterDoctor(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register doctor: %w", err)
	}
	s.logger.Info("Doctor registered", zap.Int64("doctor_id", doctor.DoctorID))
	return doctor, nil
}

// UpdateDoctor сохраняет профиль врача целиком
func (s *DirectoryService) UpdateDoctor(ctx context.Context, id int64, req model.DoctorRequest) (*model.Doctor, error) {
	if err := checkDoctorRequest(&req); err != nil {
		return nil, err
	}

	doctor, err := s.client.UpdateDoctor(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	s.logger.Info("Doctor updated", zap.Int64("doctor_id", id))
	return doctor, nil
}

func checkDoctorRequest(req *model.DoctorRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Description = strings.TrimSpace(req.Description)
	req.AcademicDegree = strings.TrimSpace(req.AcademicDegree)
	switch {
	case req.SpecialtyID == 0:
		return ErrNoSpecialty
	case req.ClinicID == 0:
		return ErrNoClinic
	case !req.Price.IsPositive():
		return ErrInvalidPrice
	}
	return Validate(*req)
}

// DeleteDoctor удаляет врача
func (s *DirectoryService) DeleteDoctor(ctx context.Context, id int64) error {
	if err := s.client.DeleteDoctor(ctx, id); err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	s.logger.Info("Doctor deleted", zap.Int64("doctor_id", id))
	return nil
}

// CreateClinic создаёт клинику
func (s *DirectoryService) CreateClinic(ctx context.Context, req model.ClinicRequest) (*model.Clinic, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if err := Validate(req); err != nil {
		return nil, err
	}

	clinic, err := s.client.CreateClinic(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create clinic: %w", err)
	}
	s.logger.Info("Clinic created", zap.Int64("clinic_id", clinic.ID), zap.String("name", clinic.Name))
	return clinic, nil
}

// UpdateClinic сохраняет клинику целиком
func (s *DirectoryService) UpdateClinic(ctx context.Context, id int64, req model.ClinicRequest) (*model.Clinic, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Description = strings.TrimSpace(req.Description)
	if err := Validate(req); err != nil {
		return nil, err
	}

	clinic, err := s.client.UpdateClinic(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update clinic: %w", err)
	}
	s.logger.Info("Clinic updated", zap.Int64("clinic_id", id))
	return clinic, nil
}

// DeleteClinic удаляет клинику
func (s *DirectoryService) DeleteClinic(ctx context.Context, id int64) error {
	if err := s.client.DeleteClinic(ctx, id); err != nil {
		return fmt.Errorf("delete clinic: %w", err)
	}
	s.logger.Info("Clinic deleted", zap.Int64("clinic_id", id))
	return nil
}

// CreateSpecialty создаёт специальность
func (s *DirectoryService) CreateSpecialty(ctx context.Context, req model.SpecialtyRequest) (*model.Specialty, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := Validate(req); err != nil {
		return nil, err
	}

	specialty, err := s.client.CreateSpecialty(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create specialty: %w", err)
	}
	s.logger.Info("Specialty created", zap.Int64("specialty_id", specialty.ID), zap.String("name", specialty.Name))
	return specialty, nil
}

// UpdateSpecialty сохраняет специальность целиком
func (s *DirectoryService) UpdateSpecialty(ctx context.Context, id int64, req model.SpecialtyRequest) (*model.Specialty, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := Validate(req); err != nil {
		return nil, err
	}

	specialty, err := s.client.UpdateSpecialty(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update specialty: %w", err)
	}
	s.logger.Info("Specialty updated", zap.Int64("specialty_id", id))
	return specialty, nil
}

// DeleteSpecialty удаляет специальность
func (s *DirectoryService) DeleteSpecialty(ctx context.Context, id int64) error {
	if err := s.client.DeleteSpecialty(ctx, id); err != nil {
		return fmt.Errorf("delete specialty: %w", err)
	}
	s.logger.Info("Specialty deleted", zap.Int64("specialty_id", id))
	return nil
}
