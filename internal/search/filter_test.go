package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func testDoctors() []model.Doctor {
	cardio := &model.Specialty{ID: 1, Name: "Tim mạch"}
	dental := &model.Specialty{ID: 2, Name: "Răng Hàm Mặt"}
	choRay := &model.Clinic{ID: 10, Name: "Bệnh viện Chợ Rẫy"}
	hanoi := &model.Clinic{ID: 20, Name: "Phòng khám Hà Nội"}

	return []model.Doctor{
		{DoctorID: 1, FullName: "Nguyễn Văn Thái", Specialty: cardio, Clinic: choRay},
		{DoctorID: 2, FullName: "Trần Thị Mai", Specialty: dental, Clinic: hanoi},
		{DoctorID: 3, FullName: "Lê Minh Đức", Specialty: cardio, Clinic: hanoi},
		{DoctorID: 4, FullName: "Phạm Quốc Bảo"},
	}
}

func doctorIDs(doctors []model.Doctor) []int64 {
	ids := make([]int64, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.DoctorID)
	}
	return ids
}

func TestFilterDoctorsEmptyCriteriaKeepsList(t *testing.T) {
	doctors := testDoctors()

	got := FilterDoctors(doctors, Criteria{})
	assert.Equal(t, doctors, got)

	got = FilterDoctors(doctors, Criteria{Keyword: "   "})
	assert.Equal(t, doctors, got)
}

func TestFilterDoctorsKeywordIsSubstringOnly(t *testing.T) {
	doctors := testDoctors()

	got := FilterDoctors(doctors, Criteria{Keyword: "thai"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].DoctorID)

	got = FilterDoctors(doctors, Criteria{Keyword: "nguyenvanthai"})
	assert.Empty(t, got)

	got = FilterDoctors(doctors, Criteria{Keyword: "NGUYỄN văn"})
	assert.Equal(t, []int64{1}, doctorIDs(got))
}

func TestFilterDoctorsKeywordSearchesSpecialtyAndClinic(t *testing.T) {
	doctors := testDoctors()

	assert.Equal(t, []int64{1, 3}, doctorIDs(FilterDoctors(doctors, Criteria{Keyword: "tim mach"})))
	assert.Equal(t, []int64{2, 3}, doctorIDs(FilterDoctors(doctors, Criteria{Keyword: "ha noi"})))
}

func TestFilterDoctorsCombinesCriteria(t *testing.T) {
	doctors := testDoctors()

	got := FilterDoctors(doctors, Criteria{SpecialtyID: "1", ClinicID: "20"})
	assert.Equal(t, []int64{3}, doctorIDs(got))

	got = FilterDoctors(doctors, Criteria{Keyword: "duc", SpecialtyID: "2"})
	assert.Empty(t, got)

	got = FilterDoctors(doctors, Criteria{SpecialtyID: "abc"})
	assert.Empty(t, got)
}

func testAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: 1, PatientName: "Hoàng Anh", DoctorName: "Nguyễn Văn Thái", Status: model.AppointmentStatusCompleted, AppointmentDate: "2025-06-01", Diagnosis: "Viêm họng"},
		{ID: 2, PatientName: "Vũ Lan", DoctorName: "Trần Thị Mai", Status: model.AppointmentStatusCancelled, AppointmentDate: "2025-06-05", PatientPhone: "0901234567"},
		{ID: 3, PatientName: "Đỗ Hùng", DoctorName: "Nguyễn Văn Thái", Status: model.AppointmentStatusCompleted, AppointmentDate: "2025-06-10"},
		{ID: 4, PatientName: "Lý Hoa", DoctorName: "Lê Minh Đức", Status: model.AppointmentStatusPending, AppointmentDate: "bad"},
	}
}

func appointmentIDs(appointments []model.Appointment) []int64 {
	ids := make([]int64, 0, len(appointments))
	for _, a := range appointments {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestFilterAppointments(t *testing.T) {
	appointments := testAppointments()

	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{name: "no criteria", criteria: Criteria{}, want: []int64{1, 2, 3, 4}},
		{name: "doctor name", criteria: Criteria{Keyword: "thai"}, want: []int64{1, 3}},
		{name: "patient name", criteria: Criteria{Keyword: "do hung"}, want: []int64{3}},
		{name: "phone", criteria: Criteria{Keyword: "0901"}, want: []int64{2}},
		{name: "diagnosis", criteria: Criteria{Keyword: "viem hong"}, want: []int64{1}},
		{name: "status", criteria: Criteria{Status: string(model.AppointmentStatusCompleted)}, want: []int64{1, 3}},
		{name: "exact date", criteria: Criteria{Date: "2025-06-05"}, want: []int64{2}},
		{name: "inclusive range", criteria: Criteria{DateFrom: "2025-06-05", DateTo: "2025-06-10"}, want: []int64{2, 3}},
		{name: "open lower bound", criteria: Criteria{DateTo: "2025-06-05"}, want: []int64{1, 2}},
		{name: "open upper bound", criteria: Criteria{DateFrom: "2025-06-06"}, want: []int64{3}},
		{name: "keyword and status", criteria: Criteria{Keyword: "thai", Status: string(model.AppointmentStatusCancelled)}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAppointments(appointments, tt.criteria)
			assert.Equal(t, tt.want, appointmentIDs(got))
		})
	}
}

func TestFilterByStatuses(t *testing.T) {
	got := FilterByStatuses(testAppointments(), model.AppointmentStatusCompleted, model.AppointmentStatusCancelled)
	assert.Equal(t, []int64{1, 2, 3}, appointmentIDs(got))
}

func TestCriteriaIsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Status: "PENDING"}.IsEmpty())
}
